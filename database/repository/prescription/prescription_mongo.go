package prescriptionRepo

import (
	"context"
	"fmt"
	"time"

	"healthhub/database"
	"healthhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPrescriptionRepo implements PrescriptionRepository using MongoDB.
type MongoPrescriptionRepo struct {
	coll *mongo.Collection
}

// NewMongoPrescriptionRepo creates a new instance of PrescriptionRepository using MongoDB.
func NewMongoPrescriptionRepo() PrescriptionRepository {
	coll := database.DB().Collection("prescriptions")
	repo := &MongoPrescriptionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create prescription indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPrescriptionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patient", Value: 1}, {Key: "prescriptionDate", Value: -1}}},
		{Keys: bson.D{{Key: "doctor", Value: 1}, {Key: "prescriptionDate", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "expiryDate", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new prescription document.
func (r *MongoPrescriptionRepo) Create(prescription *models.Prescription) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	prescription.CreatedAt = now
	prescription.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, prescription)
	if err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

// Update modifies an existing prescription document.
func (r *MongoPrescriptionRepo) Update(prescription *models.Prescription) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	prescription.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": prescription.ID}, bson.M{"$set": prescription})
	if err != nil {
		return fmt.Errorf("failed to update prescription with id %s: %w", prescription.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("prescription with id %s not found", prescription.ID)
	}
	return nil
}

// Delete removes a prescription document by its ID.
func (r *MongoPrescriptionRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete prescription with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("prescription with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a prescription by its unique ID. A missing prescription
// returns (nil, nil).
func (r *MongoPrescriptionRepo) GetByID(id string) (*models.Prescription, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var prescription models.Prescription
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&prescription); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch prescription with id %s: %w", id, err)
	}
	return &prescription, nil
}

// GetAll retrieves prescriptions matching the filter sorted by most recent,
// with the total count for pagination.
func (r *MongoPrescriptionRepo) GetAll(filter PrescriptionFilter) ([]models.Prescription, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if filter.PatientID != "" {
		query["patient"] = filter.PatientID
	}
	if filter.DoctorID != "" {
		query["doctor"] = filter.DoctorID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "prescriptionDate", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve prescriptions: %w", err)
	}
	defer cursor.Close(ctx)

	var prescriptions []models.Prescription
	if err := cursor.All(ctx, &prescriptions); err != nil {
		return nil, 0, fmt.Errorf("failed to decode prescriptions: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count prescriptions: %w", err)
	}
	return prescriptions, total, nil
}

// UpdateStatus sets the status of one prescription.
func (r *MongoPrescriptionRepo) UpdateStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update prescription status for id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("prescription with id %s not found", id)
	}
	return nil
}

// Stats aggregates prescription counts and the most prescribed medications
// for one patient or doctor scope.
func (r *MongoPrescriptionRepo) Stats(patientID, doctorID string) (*PrescriptionStats, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	match := bson.M{}
	if patientID != "" {
		match["patient"] = patientID
	}
	if doctorID != "" {
		match["doctor"] = doctorID
	}

	statusIs := func(status string) bson.M {
		return bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", status}}, 1, 0}}}
	}
	overallPipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"total":     bson.M{"$sum": 1},
			"active":    statusIs("active"),
			"completed": statusIs("completed"),
			"expired":   statusIs("expired"),
			"cancelled": statusIs("cancelled"),
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, overallPipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate prescription stats: %w", err)
	}
	defer cursor.Close(ctx)

	var overall []PrescriptionStats
	if err := cursor.All(ctx, &overall); err != nil {
		return nil, fmt.Errorf("failed to decode prescription stats: %w", err)
	}

	stats := &PrescriptionStats{}
	if len(overall) > 0 {
		*stats = overall[0]
	}

	medPipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$unwind", Value: "$medications"}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$medications.name", "count": bson.M{"$sum": 1}}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
		bson.D{{Key: "$limit", Value: 10}},
	}
	medCursor, err := r.coll.Aggregate(ctx, medPipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate medications: %w", err)
	}
	defer medCursor.Close(ctx)

	if err := medCursor.All(ctx, &stats.ByMedication); err != nil {
		return nil, fmt.Errorf("failed to decode medication stats: %w", err)
	}
	return stats, nil
}

// ExpireOverdue marks active prescriptions whose expiry date has passed as
// expired and returns how many were updated.
func (r *MongoPrescriptionRepo) ExpireOverdue() (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"status": "active", "expiryDate": bson.M{"$lt": time.Now()}}
	update := bson.M{"$set": bson.M{"status": "expired", "updatedAt": time.Now()}}

	result, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to expire prescriptions: %w", err)
	}
	return result.ModifiedCount, nil
}
