package hospitalRepo

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

// MongoHospitalRepo implements HospitalRepository using MongoDB.
type MongoHospitalRepo struct {
	coll *mongo.Collection
}

// NewMongoHospitalRepo creates a new instance of HospitalRepository using MongoDB.
func NewMongoHospitalRepo() HospitalRepository {
	coll := database.DB().Collection("hospitals")
	repo := &MongoHospitalRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create hospital indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoHospitalRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "registrationNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "address.city", Value: 1}, {Key: "address.state", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "isActive", Value: 1}}},
		{Keys: bson.D{{Key: "specialties", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new hospital document.
func (r *MongoHospitalRepo) Create(hospital *models.Hospital) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	hospital.CreatedAt = now
	hospital.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, hospital)
	if err != nil {
		return fmt.Errorf("failed to create hospital: %w", err)
	}
	return nil
}

// Update modifies an existing hospital document.
func (r *MongoHospitalRepo) Update(hospital *models.Hospital) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	hospital.UpdatedAt = time.Now()
	filter := bson.M{"id": hospital.ID}
	update := bson.M{"$set": hospital}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update hospital with id %s: %w", hospital.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("hospital with id %s not found", hospital.ID)
	}
	return nil
}

// Delete removes a hospital document by its ID.
func (r *MongoHospitalRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete hospital with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("hospital with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a hospital by its unique ID. A missing hospital returns
// (nil, nil).
func (r *MongoHospitalRepo) GetByID(id string) (*models.Hospital, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var hospital models.Hospital
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&hospital); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch hospital with id %s: %w", id, err)
	}
	return &hospital, nil
}

// GetAll retrieves active hospitals matching the filter, sorted by rating,
// with the total count for pagination.
func (r *MongoHospitalRepo) GetAll(filter HospitalFilter) ([]models.Hospital, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{"isActive": true}
	if filter.City != "" {
		query["address.city"] = bson.M{"$regex": filter.City, "$options": "i"}
	}
	if filter.State != "" {
		query["address.state"] = bson.M{"$regex": filter.State, "$options": "i"}
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Specialty != "" {
		query["specialties"] = bson.M{"$regex": filter.Specialty, "$options": "i"}
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
		SetSort(bson.D{{Key: "ratings.overall", Value: -1}, {Key: "name", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve hospitals: %w", err)
	}
	defer cursor.Close(ctx)

	var hospitals []models.Hospital
	if err := cursor.All(ctx, &hospitals); err != nil {
		return nil, 0, fmt.Errorf("failed to decode hospitals: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count hospitals: %w", err)
	}
	return hospitals, total, nil
}

// Stats aggregates headline numbers over active hospitals.
func (r *MongoHospitalRepo) Stats() (*HospitalStats, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	overallPipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"isActive": true}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"totalHospitals": bson.M{"$sum": 1},
			"avgRating":      bson.M{"$avg": "$ratings.overall"},
			"totalReviews":   bson.M{"$sum": "$ratings.totalReviews"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, overallPipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate hospital stats: %w", err)
	}
	defer cursor.Close(ctx)

	var overall []struct {
		TotalHospitals int     `bson:"totalHospitals"`
		AvgRating      float64 `bson:"avgRating"`
		TotalReviews   int     `bson:"totalReviews"`
	}
	if err := cursor.All(ctx, &overall); err != nil {
		return nil, fmt.Errorf("failed to decode hospital stats: %w", err)
	}

	stats := &HospitalStats{}
	if len(overall) > 0 {
		stats.TotalHospitals = overall[0].TotalHospitals
		stats.AvgRating = overall[0].AvgRating
		stats.TotalReviews = overall[0].TotalReviews
	}

	typePipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"isActive": true}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$type", "count": bson.M{"$sum": 1}}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	typeCursor, err := r.coll.Aggregate(ctx, typePipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate hospital types: %w", err)
	}
	defer typeCursor.Close(ctx)

	if err := typeCursor.All(ctx, &stats.Types); err != nil {
		return nil, fmt.Errorf("failed to decode hospital type stats: %w", err)
	}

	cityPipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"isActive": true}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$address.city", "count": bson.M{"$sum": 1}}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
		bson.D{{Key: "$limit", Value: 5}},
	}
	cityCursor, err := r.coll.Aggregate(ctx, cityPipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate hospital cities: %w", err)
	}
	defer cityCursor.Close(ctx)

	if err := cityCursor.All(ctx, &stats.TopCities); err != nil {
		return nil, fmt.Errorf("failed to decode hospital city stats: %w", err)
	}
	return stats, nil
}
