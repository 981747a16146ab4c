package healthRecordRepo

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

// MongoHealthRecordRepo implements HealthRecordRepository using MongoDB.
type MongoHealthRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoHealthRecordRepo creates a new instance of HealthRecordRepository using MongoDB.
func NewMongoHealthRecordRepo() HealthRecordRepository {
	coll := database.DB().Collection("healthrecords")
	repo := &MongoHealthRecordRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create health record indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoHealthRecordRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patient", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "patient", Value: 1}, {Key: "recordType", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new health record document.
func (r *MongoHealthRecordRepo) Create(record *models.HealthRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to create health record: %w", err)
	}
	return nil
}

// Update modifies an existing health record document.
func (r *MongoHealthRecordRepo) Update(record *models.HealthRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	record.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": record.ID}, bson.M{"$set": record})
	if err != nil {
		return fmt.Errorf("failed to update health record with id %s: %w", record.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("health record with id %s not found", record.ID)
	}
	return nil
}

// Delete removes a health record document by its ID.
func (r *MongoHealthRecordRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete health record with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("health record with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a health record by its unique ID. A missing record
// returns (nil, nil).
func (r *MongoHealthRecordRepo) GetByID(id string) (*models.HealthRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var record models.HealthRecord
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch health record with id %s: %w", id, err)
	}
	return &record, nil
}

// GetAll retrieves health records matching the filter sorted by most recent,
// with the total count for pagination.
func (r *MongoHealthRecordRepo) GetAll(filter HealthRecordFilter) ([]models.HealthRecord, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if filter.PatientID != "" {
		query["patient"] = filter.PatientID
	}
	if filter.RecordType != "" {
		query["recordType"] = filter.RecordType
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
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve health records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.HealthRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, 0, fmt.Errorf("failed to decode health records: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count health records: %w", err)
	}
	return records, total, nil
}

// GetVitalsTimeline returns the most recent records for a patient that carry
// vital sign readings, newest first.
func (r *MongoHealthRecordRepo) GetVitalsTimeline(patientID string, limit int) ([]models.HealthRecord, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if limit < 1 {
		limit = 20
	}

	query := bson.M{"patient": patientID, "vitalSigns": bson.M{"$exists": true, "$ne": nil}}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve vitals timeline: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.HealthRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode vitals timeline: %w", err)
	}
	return records, nil
}

// Stats aggregates one patient's record counts by type.
func (r *MongoHealthRecordRepo) Stats(patientID string) (*HealthRecordStats, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	match := bson.M{}
	if patientID != "" {
		match["patient"] = patientID
	}

	overallPipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"totalRecords": bson.M{"$sum": 1},
			"latestRecord": bson.M{"$max": "$date"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, overallPipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate health record stats: %w", err)
	}
	defer cursor.Close(ctx)

	var overall []struct {
		TotalRecords int        `bson:"totalRecords"`
		LatestRecord *time.Time `bson:"latestRecord"`
	}
	if err := cursor.All(ctx, &overall); err != nil {
		return nil, fmt.Errorf("failed to decode health record stats: %w", err)
	}

	stats := &HealthRecordStats{}
	if len(overall) > 0 {
		stats.TotalRecords = overall[0].TotalRecords
		stats.LatestRecord = overall[0].LatestRecord
	}

	typePipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$recordType", "count": bson.M{"$sum": 1}}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	typeCursor, err := r.coll.Aggregate(ctx, typePipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate record types: %w", err)
	}
	defer typeCursor.Close(ctx)

	if err := typeCursor.All(ctx, &stats.ByRecordType); err != nil {
		return nil, fmt.Errorf("failed to decode record type stats: %w", err)
	}
	return stats, nil
}
