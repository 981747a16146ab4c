package labReportRepo

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

// MongoLabReportRepo implements LabReportRepository using MongoDB.
type MongoLabReportRepo struct {
	coll *mongo.Collection
}

// NewMongoLabReportRepo creates a new instance of LabReportRepository using MongoDB.
func NewMongoLabReportRepo() LabReportRepository {
	coll := database.DB().Collection("labreports")
	repo := &MongoLabReportRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create lab report indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoLabReportRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "reportNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patient", Value: 1}, {Key: "reportDate", Value: -1}}},
		{Keys: bson.D{{Key: "doctor", Value: 1}, {Key: "reportDate", Value: -1}}},
		{Keys: bson.D{{Key: "testType", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new lab report document.
func (r *MongoLabReportRepo) Create(report *models.LabReport) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	report.CreatedAt = now
	report.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, report)
	if err != nil {
		return fmt.Errorf("failed to create lab report: %w", err)
	}
	return nil
}

// Update modifies an existing lab report document.
func (r *MongoLabReportRepo) Update(report *models.LabReport) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	report.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": report.ID}, bson.M{"$set": report})
	if err != nil {
		return fmt.Errorf("failed to update lab report with id %s: %w", report.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("lab report with id %s not found", report.ID)
	}
	return nil
}

// Delete removes a lab report document by its ID.
func (r *MongoLabReportRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete lab report with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("lab report with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a lab report by its unique ID. A missing report returns
// (nil, nil).
func (r *MongoLabReportRepo) GetByID(id string) (*models.LabReport, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var report models.LabReport
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&report); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch lab report with id %s: %w", id, err)
	}
	return &report, nil
}

// GetAll retrieves lab reports matching the filter sorted by most recent,
// with the total count for pagination.
func (r *MongoLabReportRepo) GetAll(filter LabReportFilter) ([]models.LabReport, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if filter.PatientID != "" {
		query["patient"] = filter.PatientID
	}
	if filter.DoctorID != "" {
		query["doctor"] = filter.DoctorID
	}
	if filter.TestType != "" {
		query["testType"] = filter.TestType
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
		SetSort(bson.D{{Key: "reportDate", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve lab reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []models.LabReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, 0, fmt.Errorf("failed to decode lab reports: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count lab reports: %w", err)
	}
	return reports, total, nil
}

// AddAttachment appends an uploaded file reference to a report.
func (r *MongoLabReportRepo) AddAttachment(id string, attachment models.Attachment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"attachments": attachment},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add attachment to lab report %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("lab report with id %s not found", id)
	}
	return nil
}

// Stats aggregates lab report counts by test type and laboratory for one
// patient or doctor scope.
func (r *MongoLabReportRepo) Stats(patientID, doctorID string) (*LabReportStats, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	match := bson.M{}
	if patientID != "" {
		match["patient"] = patientID
	}
	if doctorID != "" {
		match["doctor"] = doctorID
	}

	overallPipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"totalReports": bson.M{"$sum": 1},
			"latestReport": bson.M{"$max": "$reportDate"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, overallPipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate lab report stats: %w", err)
	}
	defer cursor.Close(ctx)

	var overall []struct {
		TotalReports int        `bson:"totalReports"`
		LatestReport *time.Time `bson:"latestReport"`
	}
	if err := cursor.All(ctx, &overall); err != nil {
		return nil, fmt.Errorf("failed to decode lab report stats: %w", err)
	}

	stats := &LabReportStats{}
	if len(overall) > 0 {
		stats.TotalReports = overall[0].TotalReports
		stats.LatestReport = overall[0].LatestReport
	}

	group := func(field string, limit int) ([]LabBucketCount, error) {
		pipeline := mongo.Pipeline{
			bson.D{{Key: "$match", Value: match}},
			bson.D{{Key: "$group", Value: bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}}},
			bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
		}
		if limit > 0 {
			pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
		}
		cursor, err := r.coll.Aggregate(ctx, pipeline)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate lab reports by %s: %w", field, err)
		}
		defer cursor.Close(ctx)

		var out []LabBucketCount
		if err := cursor.All(ctx, &out); err != nil {
			return nil, fmt.Errorf("failed to decode %s aggregation: %w", field, err)
		}
		return out, nil
	}

	if stats.ByTestType, err = group("testType", 0); err != nil {
		return nil, err
	}
	if stats.ByLaboratory, err = group("laboratory.name", 5); err != nil {
		return nil, err
	}
	return stats, nil
}

// RemoveAttachment drops one uploaded file reference by its storage public ID.
func (r *MongoLabReportRepo) RemoveAttachment(id, publicID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"attachments": bson.M{"publicId": publicID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to remove attachment from lab report %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("lab report with id %s not found", id)
	}
	return nil
}
