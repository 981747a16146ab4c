package appointment

import (
	"context"
	"testing"
	"time"

	appointmentRepo "healthhub/database/repository/appointment"
	doctorRepo "healthhub/database/repository/doctor"
	userRepo "healthhub/database/repository/user"
	"healthhub/models"
	"healthhub/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApptRepo struct {
	appointmentRepo.AppointmentRepository
	created   *models.Appointment
	updated   *models.Appointment
	existing  map[string]*models.Appointment
	occupying []models.Appointment
	createErr error
}

func (f *fakeApptRepo) CreateChecked(ctx context.Context, appt *models.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = appt
	return nil
}

func (f *fakeApptRepo) Update(appt *models.Appointment) error {
	f.updated = appt
	return nil
}

func (f *fakeApptRepo) GetByID(id string) (*models.Appointment, error) {
	return f.existing[id], nil
}

func (f *fakeApptRepo) GetOccupying(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	return f.occupying, nil
}

type fakeDoctorRepo struct {
	doctorRepo.DoctorRepository
	doc *models.Doctor
}

func (f *fakeDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	if f.doc != nil && f.doc.ID == id {
		return f.doc, nil
	}
	return nil, nil
}

type fakeUserRepo struct {
	userRepo.UserRepository
	user *models.User
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, nil
}

type fakeInvalidator struct {
	calls []string
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, doctorID, date string) {
	f.calls = append(f.calls, doctorID+":"+date)
}

func activePatient() *models.User {
	return &models.User{ID: "pat-1", FirstName: "Jane", LastName: "Wambui", Role: models.RolePatient, IsActive: true}
}

func activeDoctor() *models.Doctor {
	return &models.Doctor{
		ID:              "doc-1",
		Name:            "Dr. Achieng",
		HospitalID:      "hosp-1",
		Department:      "Cardiology",
		ConsultationFee: 150,
		IsActive:        true,
	}
}

func newService(repo *fakeApptRepo, doc *models.Doctor, user *models.User, inv *fakeInvalidator) *DefaultAppointmentService {
	svc := &DefaultAppointmentService{
		Repo:       repo,
		DoctorRepo: &fakeDoctorRepo{doc: doc},
		UserRepo:   &fakeUserRepo{user: user},
	}
	if inv != nil {
		svc.Invalidator = inv
	}
	return svc
}

// futureDate returns a date far enough out that reminder planning and the
// cancellation window behave deterministically.
func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func TestBookFillsDefaultsAndPlansReminders(t *testing.T) {
	repo := &fakeApptRepo{}
	inv := &fakeInvalidator{}
	svc := newService(repo, activeDoctor(), activePatient(), inv)
	date := futureDate(7)

	appt, err := svc.Book(context.Background(), "pat-1", BookingRequest{
		DoctorID:        "doc-1",
		AppointmentDate: date,
		AppointmentTime: "10:00",
		Reason:          "chest pain",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)

	assert.NotEmpty(t, appt.ID)
	assert.Equal(t, models.StatusScheduled, appt.Status)
	assert.Equal(t, 30, appt.Duration)
	assert.Equal(t, "Cardiology", appt.Department)
	assert.Equal(t, "consultation", appt.AppointmentType)
	assert.Equal(t, "hosp-1", appt.HospitalID)
	assert.Equal(t, 150.0, appt.Cost)
	assert.Equal(t, models.PaymentPending, appt.PaymentStatus)
	assert.Len(t, appt.Reminders, 2)
	assert.Equal(t, []string{"doc-1:" + date}, inv.calls)
}

func TestBookConflictMapsSlotTaken(t *testing.T) {
	repo := &fakeApptRepo{createErr: appointmentRepo.ErrSlotTaken}
	svc := newService(repo, activeDoctor(), activePatient(), nil)

	_, err := svc.Book(context.Background(), "pat-1", BookingRequest{
		DoctorID:        "doc-1",
		AppointmentDate: futureDate(7),
		AppointmentTime: "10:00",
		Reason:          "follow-up",
	})

	var conflict *scheduling.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "doc-1", conflict.DoctorID)
	assert.Equal(t, "10:00", conflict.Time)
}

func TestBookRejectsUnknownDoctor(t *testing.T) {
	svc := newService(&fakeApptRepo{}, nil, activePatient(), nil)

	_, err := svc.Book(context.Background(), "pat-1", BookingRequest{
		DoctorID:        "ghost",
		AppointmentDate: futureDate(7),
		AppointmentTime: "10:00",
		Reason:          "checkup",
	})

	var notFound *scheduling.DoctorNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestBookRejectsInactiveDoctor(t *testing.T) {
	doc := activeDoctor()
	doc.IsActive = false
	svc := newService(&fakeApptRepo{}, doc, activePatient(), nil)

	_, err := svc.Book(context.Background(), "pat-1", BookingRequest{
		DoctorID:        "doc-1",
		AppointmentDate: futureDate(7),
		AppointmentTime: "10:00",
		Reason:          "checkup",
	})

	var notFound *scheduling.DoctorNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestBookRejectsBadInputs(t *testing.T) {
	svc := newService(&fakeApptRepo{}, activeDoctor(), activePatient(), nil)
	valid := BookingRequest{
		DoctorID:        "doc-1",
		AppointmentDate: futureDate(7),
		AppointmentTime: "10:00",
		Reason:          "checkup",
	}

	var missing *scheduling.MissingParameterError
	_, err := svc.Book(context.Background(), "", valid)
	require.ErrorAs(t, err, &missing)

	req := valid
	req.AppointmentDate = ""
	_, err = svc.Book(context.Background(), "pat-1", req)
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "appointmentDate", missing.Param)

	req = valid
	req.AppointmentDate = "06-01-2025"
	_, err = svc.Book(context.Background(), "pat-1", req)
	assert.Error(t, err)

	req = valid
	req.AppointmentTime = "9:00"
	_, err = svc.Book(context.Background(), "pat-1", req)
	var badClock *scheduling.InvalidClockError
	require.ErrorAs(t, err, &badClock)
}

func TestBookEnforcesDurationBounds(t *testing.T) {
	cases := []struct {
		duration int
		ok       bool
	}{
		{600, false}, // would shadow the whole working day
		{10, false},
		{14, false},
		{181, false},
		{15, true},
		{180, true},
	}

	for _, tc := range cases {
		repo := &fakeApptRepo{}
		svc := newService(repo, activeDoctor(), activePatient(), nil)

		appt, err := svc.Book(context.Background(), "pat-1", BookingRequest{
			DoctorID:        "doc-1",
			AppointmentDate: futureDate(7),
			AppointmentTime: "10:00",
			Duration:        tc.duration,
			Reason:          "checkup",
		})
		if !tc.ok {
			assert.Error(t, err, "duration %d", tc.duration)
			assert.Nil(t, repo.created, "duration %d", tc.duration)
			continue
		}
		require.NoError(t, err, "duration %d", tc.duration)
		assert.Equal(t, tc.duration, appt.Duration)
	}
}

func TestRescheduleEnforcesDurationBounds(t *testing.T) {
	appt := &models.Appointment{
		ID:              "appt-1",
		DoctorID:        "doc-1",
		PatientID:       "pat-1",
		AppointmentDate: futureDate(7),
		AppointmentTime: "10:00",
		Duration:        600,
		Status:          models.StatusScheduled,
	}
	repo := &fakeApptRepo{existing: map[string]*models.Appointment{"appt-1": appt}}
	svc := newService(repo, activeDoctor(), activePatient(), nil)

	_, err := svc.Reschedule(context.Background(), "appt-1", futureDate(8), "14:00")
	assert.Error(t, err)
	assert.Nil(t, repo.updated)
}

func TestUpdateStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{models.StatusScheduled, models.StatusConfirmed, true},
		{models.StatusScheduled, models.StatusCancelled, true},
		{models.StatusScheduled, models.StatusCompleted, false},
		{models.StatusConfirmed, models.StatusInProgress, true},
		{models.StatusConfirmed, models.StatusScheduled, false},
		{models.StatusInProgress, models.StatusCompleted, true},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusConfirmed, false},
	}

	for _, tc := range cases {
		repo := &fakeApptRepo{existing: map[string]*models.Appointment{
			"appt-1": {ID: "appt-1", DoctorID: "doc-1", AppointmentDate: futureDate(3), Status: tc.from},
		}}
		svc := newService(repo, nil, nil, nil)

		appt, err := svc.UpdateStatus(context.Background(), "appt-1", tc.to, "", "")
		if tc.ok {
			require.NoError(t, err, "%s -> %s", tc.from, tc.to)
			assert.Equal(t, tc.to, appt.Status)
		} else {
			assert.Error(t, err, "%s -> %s", tc.from, tc.to)
		}
	}
}

func TestUpdateStatusRecordsNotes(t *testing.T) {
	repo := &fakeApptRepo{existing: map[string]*models.Appointment{
		"appt-1": {ID: "appt-1", Status: models.StatusInProgress},
	}}
	svc := newService(repo, nil, nil, nil)

	appt, err := svc.UpdateStatus(context.Background(), "appt-1", models.StatusCompleted, "rest and hydrate", "mild flu")
	require.NoError(t, err)
	assert.Equal(t, "rest and hydrate", appt.DoctorNotes)
	assert.Equal(t, "mild flu", appt.Diagnosis)
}

func TestCancelOwnershipAndWindow(t *testing.T) {
	farOut := &models.Appointment{
		ID: "appt-1", PatientID: "pat-1", DoctorID: "doc-1",
		AppointmentDate: futureDate(3), AppointmentTime: "10:00",
		Status: models.StatusScheduled,
	}
	repo := &fakeApptRepo{existing: map[string]*models.Appointment{"appt-1": farOut}}
	inv := &fakeInvalidator{}
	svc := newService(repo, nil, nil, inv)

	// Someone else's appointment.
	_, err := svc.Cancel(context.Background(), "appt-1", "pat-2", models.RolePatient)
	assert.Error(t, err)

	appt, err := svc.Cancel(context.Background(), "appt-1", "pat-1", models.RolePatient)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, appt.Status)
	assert.Len(t, inv.calls, 1)
}

func TestCancelRejectsInsideWindow(t *testing.T) {
	soon := time.Now().Add(2 * time.Hour)
	repo := &fakeApptRepo{existing: map[string]*models.Appointment{
		"appt-1": {
			ID: "appt-1", PatientID: "pat-1",
			AppointmentDate: soon.Format("2006-01-02"),
			AppointmentTime: soon.Format("15:04"),
			Status:          models.StatusScheduled,
		},
	}}
	svc := newService(repo, nil, nil, nil)

	_, err := svc.Cancel(context.Background(), "appt-1", "pat-1", models.RolePatient)
	assert.Error(t, err)

	// Admins are not bound by the 24 hour window.
	appt, err := svc.Cancel(context.Background(), "appt-1", "admin-1", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, appt.Status)
}

func TestRescheduleChecksTargetSlot(t *testing.T) {
	date := futureDate(5)
	repo := &fakeApptRepo{
		existing: map[string]*models.Appointment{
			"appt-1": {
				ID: "appt-1", DoctorID: "doc-1",
				AppointmentDate: futureDate(2), AppointmentTime: "10:00",
				Duration: 30, Status: models.StatusScheduled,
			},
		},
		occupying: []models.Appointment{{
			ID: "appt-2", DoctorID: "doc-1", AppointmentDate: date,
			AppointmentTime: "11:00", Duration: 30, Status: models.StatusConfirmed,
		}},
	}
	inv := &fakeInvalidator{}
	svc := newService(repo, nil, nil, inv)

	_, err := svc.Reschedule(context.Background(), "appt-1", date, "11:00")
	var conflict *scheduling.ConflictError
	require.ErrorAs(t, err, &conflict)

	appt, err := svc.Reschedule(context.Background(), "appt-1", date, "14:00")
	require.NoError(t, err)
	assert.Equal(t, date, appt.AppointmentDate)
	assert.Equal(t, "14:00", appt.AppointmentTime)
	assert.Len(t, inv.calls, 2)
}

func TestRescheduleIgnoresOwnSlot(t *testing.T) {
	date := futureDate(5)
	self := &models.Appointment{
		ID: "appt-1", DoctorID: "doc-1",
		AppointmentDate: date, AppointmentTime: "10:00",
		Duration: 30, Status: models.StatusScheduled,
	}
	repo := &fakeApptRepo{
		existing:  map[string]*models.Appointment{"appt-1": self},
		occupying: []models.Appointment{*self},
	}
	svc := newService(repo, nil, nil, nil)

	// Moving within the hour it already occupies must not conflict with itself.
	appt, err := svc.Reschedule(context.Background(), "appt-1", date, "10:15")
	require.NoError(t, err)
	assert.Equal(t, "10:15", appt.AppointmentTime)
}

func TestRescheduleRejectsClosedAppointments(t *testing.T) {
	repo := &fakeApptRepo{existing: map[string]*models.Appointment{
		"appt-1": {ID: "appt-1", Status: models.StatusCompleted},
	}}
	svc := newService(repo, nil, nil, nil)

	_, err := svc.Reschedule(context.Background(), "appt-1", futureDate(5), "10:00")
	assert.Error(t, err)
}
