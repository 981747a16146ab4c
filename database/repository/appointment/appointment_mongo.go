package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthhub/database"
	"healthhub/models"
	"healthhub/services/scheduling"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrSlotTaken is returned by CreateChecked when another occupying
// appointment overlaps the requested slot.
var ErrSlotTaken = errors.New("doctor has a conflicting appointment at this time")

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository
// using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.DB().Collection("appointments")
	repo := &MongoAppointmentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create appointment indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	// The partial unique index rejects two active appointments with the same
	// exact start; overlapping-but-unequal starts are handled by the
	// transactional re-check in CreateChecked.
	activeFilter := bson.M{"status": bson.M{"$in": models.OccupyingStatuses}}

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patient", Value: 1}, {Key: "appointmentDate", Value: 1}}},
		{Keys: bson.D{{Key: "doctor", Value: 1}, {Key: "appointmentDate", Value: 1}}},
		{Keys: bson.D{{Key: "hospital", Value: 1}, {Key: "appointmentDate", Value: 1}}},
		{Keys: bson.D{{Key: "appointmentDate", Value: 1}, {Key: "status", Value: 1}}},
		{
			Keys: bson.D{
				{Key: "doctor", Value: 1},
				{Key: "appointmentDate", Value: 1},
				{Key: "appointmentTime", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(activeFilter),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetOccupying returns appointments for (doctorID, date) with a status that
// still blocks time.
func (r *MongoAppointmentRepo) GetOccupying(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	filter := bson.M{
		"doctor":          doctorID,
		"appointmentDate": date,
		"status":          bson.M{"$in": models.OccupyingStatuses},
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch occupying appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode occupying appointments: %w", err)
	}
	return appts, nil
}

// CreateChecked inserts the appointment inside a session transaction after
// re-checking for overlapping occupying appointments, so two concurrent
// booking attempts for the same window cannot both commit.
func (r *MongoAppointmentRepo) CreateChecked(ctx context.Context, appt *models.Appointment) error {
	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	candidateStart, err := scheduling.ParseClock(appt.AppointmentTime)
	if err != nil {
		return fmt.Errorf("invalid appointment time: %w", err)
	}

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		existing, err := r.GetOccupying(sc, appt.DoctorID, appt.AppointmentDate)
		if err != nil {
			return err
		}
		if scheduling.HasConflict(candidateStart, appt.Duration, existing) {
			return ErrSlotTaken
		}
		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return ErrSlotTaken
		}
		return fmt.Errorf("appointment transaction failed: %w", err)
	}
	return nil
}

// Update modifies an existing appointment document.
func (r *MongoAppointmentRepo) Update(appt *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	appt.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": appt.ID}, bson.M{"$set": appt})
	if err != nil {
		return fmt.Errorf("failed to update appointment with id %s: %w", appt.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment with id %s not found", appt.ID)
	}
	return nil
}

// Delete removes an appointment document by its ID.
func (r *MongoAppointmentRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete appointment with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("appointment with id %s not found", id)
	}
	return nil
}

// GetByID retrieves an appointment by its unique ID. A missing appointment
// returns (nil, nil).
func (r *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

// GetAll retrieves appointments matching the filter, sorted by date then
// time, with the total count for pagination.
func (r *MongoAppointmentRepo) GetAll(filter AppointmentFilter) ([]models.Appointment, int64, error) {
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
	if filter.Department != "" {
		query["department"] = filter.Department
	}
	if filter.AppointmentType != "" {
		query["appointmentType"] = filter.AppointmentType
	}
	if filter.Date != "" {
		query["appointmentDate"] = filter.Date
	} else if filter.DateFrom != "" && filter.DateTo != "" {
		query["appointmentDate"] = bson.M{"$gte": filter.DateFrom, "$lte": filter.DateTo}
	}
	if filter.Search != "" {
		regex := bson.M{"$regex": filter.Search, "$options": "i"}
		query["$or"] = []bson.M{{"reason": regex}, {"notes": regex}}
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
		SetSort(bson.D{{Key: "appointmentDate", Value: 1}, {Key: "appointmentTime", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, 0, fmt.Errorf("failed to decode appointments: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return appts, total, nil
}

// Stats aggregates appointment counts for one patient or doctor scope.
func (r *MongoAppointmentRepo) Stats(patientID, doctorID string) (*AppointmentStats, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	match := bson.M{}
	if patientID != "" {
		match["patient"] = patientID
	}
	if doctorID != "" {
		match["doctor"] = doctorID
	}

	stats := &AppointmentStats{}

	total, err := r.coll.CountDocuments(ctx, match)
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}
	stats.TotalAppointments = int(total)

	today := time.Now().Format("2006-01-02")
	todayMatch := bson.M{"appointmentDate": today}
	for k, v := range match {
		todayMatch[k] = v
	}
	todayCount, err := r.coll.CountDocuments(ctx, todayMatch)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's appointments: %w", err)
	}
	stats.TodayAppointments = int(todayCount)

	group := func(field string) ([]StatusCount, error) {
		pipeline := mongo.Pipeline{
			bson.D{{Key: "$match", Value: match}},
			bson.D{{Key: "$group", Value: bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}}},
		}
		cursor, err := r.coll.Aggregate(ctx, pipeline)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate by %s: %w", field, err)
		}
		defer cursor.Close(ctx)

		var out []StatusCount
		if err := cursor.All(ctx, &out); err != nil {
			return nil, fmt.Errorf("failed to decode %s aggregation: %w", field, err)
		}
		return out, nil
	}

	if stats.ByStatus, err = group("status"); err != nil {
		return nil, err
	}
	if stats.ByDepartment, err = group("department"); err != nil {
		return nil, err
	}

	upcomingMatch := bson.M{
		"appointmentDate": bson.M{"$gte": today},
		"status":          bson.M{"$in": []string{models.StatusScheduled, models.StatusConfirmed}},
	}
	for k, v := range match {
		upcomingMatch[k] = v
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "appointmentDate", Value: 1}, {Key: "appointmentTime", Value: 1}}).
		SetLimit(5)
	cursor, err := r.coll.Find(ctx, upcomingMatch, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming appointments: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &stats.Upcoming); err != nil {
		return nil, fmt.Errorf("failed to decode upcoming appointments: %w", err)
	}
	return stats, nil
}

// MarkReminderSent flips one reminder's sent flag by array index.
func (r *MongoAppointmentRepo) MarkReminderSent(appointmentID string, reminderIndex int) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	field := fmt.Sprintf("reminders.%d.sent", reminderIndex)
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": appointmentID}, bson.M{"$set": bson.M{field: true}})
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment with id %s not found", appointmentID)
	}
	return nil
}
