package availability

import (
	"context"
	"testing"

	"healthhub/config"
	appointmentRepo "healthhub/database/repository/appointment"
	doctorRepo "healthhub/database/repository/doctor"
	"healthhub/models"
	"healthhub/services/scheduling"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeDoctorRepo struct {
	doctorRepo.DoctorRepository
	doc *models.Doctor
}

func (f *fakeDoctorRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Doctor, error) {
	if f.doc != nil && f.doc.ID == id {
		return f.doc, nil
	}
	return nil, nil
}

type fakeApptRepo struct {
	appointmentRepo.AppointmentRepository
	appts []models.Appointment
	reads int
}

func (f *fakeApptRepo) GetOccupying(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	f.reads++
	var occupying []models.Appointment
	for _, a := range f.appts {
		if a.DoctorID == doctorID && a.AppointmentDate == date && a.IsOccupying() {
			occupying = append(occupying, a)
		}
	}
	return occupying, nil
}

func testDoctor(availability models.WeeklyAvailability) *models.Doctor {
	return &models.Doctor{
		ID:              "doc-1",
		Name:            "Dr. Achieng",
		Specialization:  "Cardiology",
		ConsultationFee: 150,
		Availability:    availability,
		IsActive:        true,
	}
}

func newService(doc *models.Doctor, appts []models.Appointment) *DefaultService {
	return &DefaultService{
		DoctorRepo: &fakeDoctorRepo{doc: doc},
		ApptRepo:   &fakeApptRepo{appts: appts},
	}
}

// A morning template with one confirmed booking: the booked slot disappears
// from the available set but still counts in the totals.
func TestQuerySubtractsBookedSlots(t *testing.T) {
	doc := testDoctor(models.WeeklyAvailability{
		"monday": {IsAvailable: true, StartTime: "09:00", EndTime: "12:00", SlotDurationMinutes: 30},
	})
	appts := []models.Appointment{{
		ID:              "appt-1",
		DoctorID:        "doc-1",
		AppointmentDate: "2025-01-06",
		AppointmentTime: "10:00",
		Duration:        30,
		Status:          models.StatusConfirmed,
	}}

	result, err := newService(doc, appts).Query(context.Background(), "doc-1", "2025-01-06")
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, result.AvailableSlots)
	assert.Equal(t, 6, result.TotalSlots)
	assert.Equal(t, 1, result.BookedSlots)
	assert.Equal(t, "doc-1", result.Doctor.ID)
	assert.Equal(t, "Dr. Achieng", result.Doctor.Name)
	assert.Equal(t, "2025-01-06", result.Date)
}

// A long appointment shadows every slot it overlaps, not just the one that
// shares its start time.
func TestQueryLongAppointmentShadowsMultipleSlots(t *testing.T) {
	doc := testDoctor(models.WeeklyAvailability{
		"monday": {IsAvailable: true, StartTime: "09:00", EndTime: "12:00", SlotDurationMinutes: 30},
	})
	appts := []models.Appointment{{
		DoctorID:        "doc-1",
		AppointmentDate: "2025-01-06",
		AppointmentTime: "10:00",
		Duration:        60,
		Status:          models.StatusScheduled,
	}}

	result, err := newService(doc, appts).Query(context.Background(), "doc-1", "2025-01-06")
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "11:00", "11:30"}, result.AvailableSlots)
	assert.Equal(t, 1, result.BookedSlots)
}

func TestQueryCancelledAppointmentsFreeTheSlot(t *testing.T) {
	doc := testDoctor(models.WeeklyAvailability{
		"monday": {IsAvailable: true, StartTime: "09:00", EndTime: "10:00", SlotDurationMinutes: 30},
	})
	appts := []models.Appointment{{
		DoctorID:        "doc-1",
		AppointmentDate: "2025-01-06",
		AppointmentTime: "09:00",
		Duration:        30,
		Status:          models.StatusCancelled,
	}}

	result, err := newService(doc, appts).Query(context.Background(), "doc-1", "2025-01-06")
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30"}, result.AvailableSlots)
	assert.Equal(t, 0, result.BookedSlots)
}

func TestQueryUnavailableDayYieldsEmptySlots(t *testing.T) {
	doc := testDoctor(models.WeeklyAvailability{
		"sunday": {IsAvailable: false},
	})

	// 2025-01-12 is a Sunday.
	result, err := newService(doc, nil).Query(context.Background(), "doc-1", "2025-01-12")
	require.NoError(t, err)

	assert.NotNil(t, result.AvailableSlots)
	assert.Empty(t, result.AvailableSlots)
	assert.Equal(t, 0, result.TotalSlots)
}

func TestQueryDefaultWindowFallback(t *testing.T) {
	config.AppConfig.DefaultWorkStart = "09:00"
	config.AppConfig.DefaultWorkEnd = "17:00"
	config.AppConfig.DefaultSlotMinutes = 30

	doc := testDoctor(nil)

	result, err := newService(doc, nil).Query(context.Background(), "doc-1", "2025-01-06")
	require.NoError(t, err)

	assert.Equal(t, 16, result.TotalSlots)
	assert.Equal(t, "09:00", result.AvailableSlots[0])
	assert.Equal(t, "16:30", result.AvailableSlots[15])
}

func TestQueryMissingParameters(t *testing.T) {
	svc := newService(testDoctor(nil), nil)

	_, err := svc.Query(context.Background(), "", "2025-01-06")
	var missing *scheduling.MissingParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "doctorId", missing.Param)

	_, err = svc.Query(context.Background(), "doc-1", "")
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "date", missing.Param)
}

func TestQueryUnknownDoctor(t *testing.T) {
	svc := newService(nil, nil)

	_, err := svc.Query(context.Background(), "ghost", "2025-01-06")
	var notFound *scheduling.DoctorNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ghost", notFound.DoctorID)
}

func TestQueryInvalidDate(t *testing.T) {
	svc := newService(testDoctor(nil), nil)

	_, err := svc.Query(context.Background(), "doc-1", "01/06/2025")
	assert.Error(t, err)
}

// With no intervening writes, repeated queries answer identically whether
// served from the repositories or from the cached json round-trip.
func TestQueryRepeatedResultsIdentical(t *testing.T) {
	mr := miniredis.RunT(t)

	doc := testDoctor(models.WeeklyAvailability{
		"monday": {IsAvailable: true, StartTime: "09:00", EndTime: "12:00", SlotDurationMinutes: 30},
	})
	repo := &fakeApptRepo{appts: []models.Appointment{{
		DoctorID:        "doc-1",
		AppointmentDate: "2025-01-06",
		AppointmentTime: "10:00",
		Duration:        30,
		Status:          models.StatusConfirmed,
	}}}
	svc := &DefaultService{
		DoctorRepo: &fakeDoctorRepo{doc: doc},
		ApptRepo:   repo,
		Cache:      redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}

	first, err := svc.Query(context.Background(), "doc-1", "2025-01-06")
	require.NoError(t, err)
	second, err := svc.Query(context.Background(), "doc-1", "2025-01-06")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.reads, "second query should be served from cache")

	// After invalidation the repositories are read again, still identically.
	svc.Invalidate(context.Background(), "doc-1", "2025-01-06")
	third, err := svc.Query(context.Background(), "doc-1", "2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, first, third)
	assert.Equal(t, 2, repo.reads)
}
