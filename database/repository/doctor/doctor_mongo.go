package doctorRepo

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

// MongoDoctorRepo implements DoctorRepository using MongoDB.
type MongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo creates a new instance of DoctorRepository using MongoDB.
func NewMongoDoctorRepo() DoctorRepository {
	coll := database.DB().Collection("doctors")
	repo := &MongoDoctorRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create doctor indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoDoctorRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "licenseNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "hospital", Value: 1}, {Key: "specialization", Value: 1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "verified", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new doctor document.
func (r *MongoDoctorRepo) Create(doctor *models.Doctor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, doctor)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

// Update modifies an existing doctor document.
func (r *MongoDoctorRepo) Update(doctor *models.Doctor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	doctor.UpdatedAt = time.Now()
	filter := bson.M{"id": doctor.ID}
	update := bson.M{"$set": doctor}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update doctor with id %s: %w", doctor.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("doctor with id %s not found", doctor.ID)
	}
	return nil
}

// Delete removes a doctor document by its ID.
func (r *MongoDoctorRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete doctor with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("doctor with id %s not found", id)
	}
	return nil
}

// GetByIDWithProjection retrieves a doctor by ID using a projection.
// Pass nil for projection to retrieve the full document. A missing doctor
// returns (nil, nil).
func (r *MongoDoctorRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&doctor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch doctor with id %s: %w", id, err)
	}
	return &doctor, nil
}

// GetByID retrieves a doctor by its unique ID (full document).
func (r *MongoDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	return r.GetByIDWithProjection(id, nil)
}

// GetAll retrieves active doctors matching the filter, sorted by rating then
// experience, with the total count for pagination.
func (r *MongoDoctorRepo) GetAll(filter DoctorFilter) ([]models.Doctor, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{"isActive": true}
	if filter.HospitalID != "" {
		query["hospital"] = filter.HospitalID
	}
	if filter.Specialization != "" {
		query["specialization"] = filter.Specialization
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
		SetSort(bson.D{{Key: "rating.average", Value: -1}, {Key: "experience", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, 0, fmt.Errorf("failed to decode doctors: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return doctors, total, nil
}

// GetByHospital retrieves active doctors for one hospital.
func (r *MongoDoctorRepo) GetByHospital(hospitalID, specialization string) ([]models.Doctor, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{"hospital": hospitalID, "isActive": true}
	if specialization != "" {
		query["specialization"] = specialization
	}

	opts := options.Find().SetSort(bson.D{{Key: "rating.average", Value: -1}, {Key: "experience", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve hospital doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode hospital doctors: %w", err)
	}
	return doctors, nil
}

// Stats aggregates headline numbers over active doctors.
func (r *MongoDoctorRepo) Stats() (*DoctorStats, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	overallPipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"isActive": true}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"totalDoctors":  bson.M{"$sum": 1},
			"avgExperience": bson.M{"$avg": "$experience"},
			"avgRating":     bson.M{"$avg": "$rating.average"},
			"totalReviews":  bson.M{"$sum": "$rating.totalReviews"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, overallPipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate doctor stats: %w", err)
	}
	defer cursor.Close(ctx)

	var overall []struct {
		TotalDoctors  int     `bson:"totalDoctors"`
		AvgExperience float64 `bson:"avgExperience"`
		AvgRating     float64 `bson:"avgRating"`
		TotalReviews  int     `bson:"totalReviews"`
	}
	if err := cursor.All(ctx, &overall); err != nil {
		return nil, fmt.Errorf("failed to decode doctor stats: %w", err)
	}

	stats := &DoctorStats{}
	if len(overall) > 0 {
		stats.TotalDoctors = overall[0].TotalDoctors
		stats.AvgExperience = overall[0].AvgExperience
		stats.AvgRating = overall[0].AvgRating
		stats.TotalReviews = overall[0].TotalReviews
	}

	specPipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"isActive": true}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$specialization", "count": bson.M{"$sum": 1}}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	specCursor, err := r.coll.Aggregate(ctx, specPipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate specializations: %w", err)
	}
	defer specCursor.Close(ctx)

	if err := specCursor.All(ctx, &stats.Specializations); err != nil {
		return nil, fmt.Errorf("failed to decode specialization stats: %w", err)
	}
	return stats, nil
}
