package cron

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	appointmentRepo "healthhub/database/repository/appointment"
	"healthhub/models"
	"healthhub/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	pushes []string
}

func (f *fakeNotifier) SendPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	f.pushes = append(f.pushes, body)
	return nil
}

type fakeApptRepo struct {
	appointmentRepo.AppointmentRepository
	appt       *models.Appointment
	markedSent []int
}

func (f *fakeApptRepo) GetByID(id string) (*models.Appointment, error) {
	if f.appt != nil && f.appt.ID == id {
		return f.appt, nil
	}
	return nil, nil
}

func (f *fakeApptRepo) MarkReminderSent(appointmentID string, reminderIndex int) error {
	f.markedSent = append(f.markedSent, reminderIndex)
	return nil
}

func reminderTask(t *testing.T, payload models.ReminderPayload) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return asynq.NewTask(tasks.TypeSendReminder, b)
}

func scheduledAppt(fireAt time.Time) *models.Appointment {
	return &models.Appointment{
		ID:              "appt-1",
		PatientID:       "pat-1",
		DoctorID:        "doc-1",
		AppointmentDate: "2025-06-10",
		AppointmentTime: "10:00",
		Status:          models.StatusScheduled,
		Reminders: []models.Reminder{
			{Type: "push", ScheduledFor: fireAt},
		},
	}
}

func TestReminderDeliversAndMarksSent(t *testing.T) {
	fireAt := time.Now().Add(time.Hour).Truncate(time.Second)
	notifier := &fakeNotifier{}
	repo := &fakeApptRepo{appt: scheduledAppt(fireAt)}
	handler := handleReminderTask(notifier, repo)

	err := handler(context.Background(), reminderTask(t, models.ReminderPayload{
		AppointmentID: "appt-1",
		ReminderIndex: 0,
		PatientID:     "pat-1",
		FireDate:      fireAt.Format(time.RFC3339),
		Title:         "Upcoming appointment",
		Body:          "You have an appointment on 2025-06-10 at 10:00",
	}))
	require.NoError(t, err)
	assert.Len(t, notifier.pushes, 1)
	assert.Equal(t, []int{0}, repo.markedSent)
}

func TestReminderDroppedAfterReschedule(t *testing.T) {
	// The appointment was moved; its reminder plan fires at a new time while
	// the queued task still carries the old one.
	oldFire := time.Now().Add(time.Hour).Truncate(time.Second)
	newFire := oldFire.Add(48 * time.Hour)
	notifier := &fakeNotifier{}
	repo := &fakeApptRepo{appt: scheduledAppt(newFire)}
	handler := handleReminderTask(notifier, repo)

	err := handler(context.Background(), reminderTask(t, models.ReminderPayload{
		AppointmentID: "appt-1",
		ReminderIndex: 0,
		PatientID:     "pat-1",
		FireDate:      oldFire.Format(time.RFC3339),
		Body:          "You have an appointment on 2025-06-08 at 09:00",
	}))
	require.NoError(t, err)
	assert.Empty(t, notifier.pushes)
	assert.Empty(t, repo.markedSent)
}

func TestReminderDroppedWhenIndexOutOfRange(t *testing.T) {
	fireAt := time.Now().Add(time.Hour).Truncate(time.Second)
	notifier := &fakeNotifier{}
	repo := &fakeApptRepo{appt: scheduledAppt(fireAt)}
	handler := handleReminderTask(notifier, repo)

	err := handler(context.Background(), reminderTask(t, models.ReminderPayload{
		AppointmentID: "appt-1",
		ReminderIndex: 3,
		PatientID:     "pat-1",
		FireDate:      fireAt.Format(time.RFC3339),
	}))
	require.NoError(t, err)
	assert.Empty(t, notifier.pushes)
	assert.Empty(t, repo.markedSent)
}

func TestReminderDroppedWhenAlreadySent(t *testing.T) {
	fireAt := time.Now().Add(time.Hour).Truncate(time.Second)
	appt := scheduledAppt(fireAt)
	appt.Reminders[0].Sent = true
	notifier := &fakeNotifier{}
	repo := &fakeApptRepo{appt: appt}
	handler := handleReminderTask(notifier, repo)

	err := handler(context.Background(), reminderTask(t, models.ReminderPayload{
		AppointmentID: "appt-1",
		ReminderIndex: 0,
		PatientID:     "pat-1",
		FireDate:      fireAt.Format(time.RFC3339),
	}))
	require.NoError(t, err)
	assert.Empty(t, notifier.pushes)
}

func TestReminderDroppedForCancelledAppointment(t *testing.T) {
	fireAt := time.Now().Add(time.Hour).Truncate(time.Second)
	appt := scheduledAppt(fireAt)
	appt.Status = models.StatusCancelled
	notifier := &fakeNotifier{}
	repo := &fakeApptRepo{appt: appt}
	handler := handleReminderTask(notifier, repo)

	err := handler(context.Background(), reminderTask(t, models.ReminderPayload{
		AppointmentID: "appt-1",
		ReminderIndex: 0,
		PatientID:     "pat-1",
		FireDate:      fireAt.Format(time.RFC3339),
	}))
	require.NoError(t, err)
	assert.Empty(t, notifier.pushes)
}
