package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "healthhub/database/repository/appointment"
	doctorRepo "healthhub/database/repository/doctor"
	userRepo "healthhub/database/repository/user"
	"healthhub/models"
	"healthhub/services/scheduling"
	"healthhub/services/tasks"
	"healthhub/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderEnqueuer queues reminder tasks. *asynq.Client satisfies it.
type ReminderEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// SlotInvalidator evicts cached availability after a booking changes.
type SlotInvalidator interface {
	Invalidate(ctx context.Context, doctorID, date string)
}

// BookingRequest carries the fields accepted when booking an appointment.
type BookingRequest struct {
	DoctorID        string           `json:"doctor" binding:"required"`
	AppointmentDate string           `json:"appointmentDate" binding:"required"`
	AppointmentTime string           `json:"appointmentTime" binding:"required"`
	Duration        int              `json:"duration"`
	Department      string           `json:"department"`
	AppointmentType string           `json:"appointmentType"`
	Reason          string           `json:"reason" binding:"required"`
	Symptoms        []string         `json:"symptoms"`
	Notes           string           `json:"notes"`
	Insurance       *models.Insurance `json:"insurance"`
}

// AppointmentService defines business logic for appointment management.
type AppointmentService interface {
	Book(ctx context.Context, patientID string, req BookingRequest) (*models.Appointment, error)
	GetByID(appointmentID string) (*models.Appointment, error)
	List(filter appointmentRepo.AppointmentFilter) ([]models.Appointment, int64, error)
	UpdateStatus(ctx context.Context, appointmentID, status, doctorNotes, diagnosis string) (*models.Appointment, error)
	Cancel(ctx context.Context, appointmentID, requesterID, requesterRole string) (*models.Appointment, error)
	Reschedule(ctx context.Context, appointmentID, newDate, newTime string) (*models.Appointment, error)
	Stats(patientID, doctorID string) (*appointmentRepo.AppointmentStats, error)
}

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Repo        appointmentRepo.AppointmentRepository
	DoctorRepo  doctorRepo.DoctorRepository
	UserRepo    userRepo.UserRepository
	Queue       ReminderEnqueuer
	Invalidator SlotInvalidator
}

// Book validates the request and inserts the appointment through the
// conflict-checked transactional path, so two concurrent requests for the
// same slot cannot both succeed. On success it queues the reminder pushes.
func (s *DefaultAppointmentService) Book(ctx context.Context, patientID string, req BookingRequest) (*models.Appointment, error) {
	if patientID == "" {
		return nil, &scheduling.MissingParameterError{Param: "patientId"}
	}
	if req.DoctorID == "" {
		return nil, &scheduling.MissingParameterError{Param: "doctor"}
	}
	if req.AppointmentDate == "" {
		return nil, &scheduling.MissingParameterError{Param: "appointmentDate"}
	}
	if req.AppointmentTime == "" {
		return nil, &scheduling.MissingParameterError{Param: "appointmentTime"}
	}

	if _, err := scheduling.WeekdayName(req.AppointmentDate); err != nil {
		return nil, err
	}
	if _, err := scheduling.ParseClock(req.AppointmentTime); err != nil {
		return nil, err
	}

	patient, err := s.UserRepo.GetByID(patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	if patient == nil || !patient.IsActive {
		return nil, fmt.Errorf("patient with id %s not found", patientID)
	}

	doctor, err := s.DoctorRepo.GetByID(req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	if doctor == nil || !doctor.IsActive {
		return nil, &scheduling.DoctorNotFoundError{DoctorID: req.DoctorID}
	}

	duration := req.Duration
	if duration <= 0 {
		duration = scheduling.DefaultSlotMinutes
	}
	if err := validateDuration(duration); err != nil {
		return nil, err
	}
	department := req.Department
	if department == "" {
		department = doctor.Department
	}
	appointmentType := req.AppointmentType
	if appointmentType == "" {
		appointmentType = "consultation"
	}

	appt := &models.Appointment{
		ID:              uuid.New().String(),
		PatientID:       patientID,
		DoctorID:        req.DoctorID,
		HospitalID:      doctor.HospitalID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Duration:        duration,
		Department:      department,
		AppointmentType: appointmentType,
		Status:          models.StatusScheduled,
		Reason:          req.Reason,
		Symptoms:        req.Symptoms,
		Notes:           req.Notes,
		Cost:            doctor.ConsultationFee,
		PaymentStatus:   models.PaymentPending,
		Insurance:       req.Insurance,
	}
	appt.Reminders = buildReminders(appt)

	if err := s.Repo.CreateChecked(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, &scheduling.ConflictError{
				DoctorID: req.DoctorID,
				Date:     req.AppointmentDate,
				Time:     req.AppointmentTime,
			}
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.enqueueReminders(appt)
	s.invalidate(ctx, appt.DoctorID, appt.AppointmentDate)
	return appt, nil
}

// validateDuration rejects durations a single visit cannot plausibly have.
// An oversized duration would block a doctor's whole day through the
// overlap check.
func validateDuration(minutes int) error {
	if minutes < scheduling.MinAppointmentMinutes || minutes > scheduling.MaxAppointmentMinutes {
		return fmt.Errorf("appointment duration must be between %d and %d minutes",
			scheduling.MinAppointmentMinutes, scheduling.MaxAppointmentMinutes)
	}
	return nil
}

// buildReminders plans the pushes for a booking: one a day before, one an
// hour before. Reminders whose fire time is already past are not planned.
func buildReminders(appt *models.Appointment) []models.Reminder {
	startsAt, err := appt.StartsAt(time.Local)
	if err != nil {
		return nil
	}

	var reminders []models.Reminder
	for _, lead := range []time.Duration{24 * time.Hour, time.Hour} {
		fireAt := startsAt.Add(-lead)
		if fireAt.Before(time.Now()) {
			continue
		}
		reminders = append(reminders, models.Reminder{
			Type:         "push",
			ScheduledFor: fireAt,
			Sent:         false,
		})
	}
	return reminders
}

func (s *DefaultAppointmentService) enqueueReminders(appt *models.Appointment) {
	if s.Queue == nil {
		return
	}
	for i, reminder := range appt.Reminders {
		payload := models.ReminderPayload{
			AppointmentID: appt.ID,
			ReminderIndex: i,
			PatientID:     appt.PatientID,
			Channel:       reminder.Type,
			FireDate:      reminder.ScheduledFor.Format(time.RFC3339),
			Title:         "Upcoming appointment",
			Body: fmt.Sprintf("You have an appointment on %s at %s",
				appt.AppointmentDate, appt.AppointmentTime),
		}
		task, opts, err := tasks.NewReminderTask(payload, reminder.ScheduledFor)
		if err != nil {
			utils.GetLogger().Warn("failed to build reminder task",
				zap.String("appointmentId", appt.ID), zap.Error(err))
			continue
		}
		if _, err := s.Queue.Enqueue(task, opts...); err != nil {
			utils.GetLogger().Warn("failed to enqueue reminder",
				zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}
}

func (s *DefaultAppointmentService) invalidate(ctx context.Context, doctorID, date string) {
	if s.Invalidator != nil {
		s.Invalidator.Invalidate(ctx, doctorID, date)
	}
}

// GetByID retrieves one appointment.
func (s *DefaultAppointmentService) GetByID(appointmentID string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	if appt == nil {
		return nil, fmt.Errorf("appointment with id %s not found", appointmentID)
	}
	return appt, nil
}

// List returns appointments matching the filter. Role scoping happens at the
// handler by setting PatientID or DoctorID on the filter.
func (s *DefaultAppointmentService) List(filter appointmentRepo.AppointmentFilter) ([]models.Appointment, int64, error) {
	return s.Repo.GetAll(filter)
}

// allowedTransitions maps a status to the statuses it may move to.
var allowedTransitions = map[string][]string{
	models.StatusScheduled:  {models.StatusConfirmed, models.StatusCancelled, models.StatusNoShow},
	models.StatusConfirmed:  {models.StatusInProgress, models.StatusCancelled, models.StatusNoShow},
	models.StatusInProgress: {models.StatusCompleted},
}

// UpdateStatus moves an appointment through its lifecycle. Closing statuses
// free the slot, so the availability cache entry for the day is evicted.
func (s *DefaultAppointmentService) UpdateStatus(ctx context.Context, appointmentID, status, doctorNotes, diagnosis string) (*models.Appointment, error) {
	appt, err := s.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(appt.Status, status) {
		return nil, fmt.Errorf("cannot change appointment status from %s to %s", appt.Status, status)
	}

	appt.Status = status
	if doctorNotes != "" {
		appt.DoctorNotes = doctorNotes
	}
	if diagnosis != "" {
		appt.Diagnosis = diagnosis
	}

	if err := s.Repo.Update(appt); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	if !appt.IsOccupying() {
		s.invalidate(ctx, appt.DoctorID, appt.AppointmentDate)
	}
	return appt, nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Cancel cancels a booking. Patients may only cancel their own scheduled
// appointments more than 24 hours before the start; admins may cancel any
// active appointment.
func (s *DefaultAppointmentService) Cancel(ctx context.Context, appointmentID, requesterID, requesterRole string) (*models.Appointment, error) {
	appt, err := s.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}

	if requesterRole != models.RoleAdmin {
		if appt.PatientID != requesterID {
			return nil, fmt.Errorf("appointment does not belong to requester")
		}
		if !appt.CanBeCancelled(time.Now()) {
			return nil, fmt.Errorf("appointment can only be cancelled at least 24 hours in advance")
		}
	} else if !appt.IsOccupying() {
		return nil, fmt.Errorf("appointment is no longer active")
	}

	appt.Status = models.StatusCancelled
	if err := s.Repo.Update(appt); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	s.invalidate(ctx, appt.DoctorID, appt.AppointmentDate)
	return appt, nil
}

// Reschedule moves an active appointment to a new slot after checking the
// target slot is free.
func (s *DefaultAppointmentService) Reschedule(ctx context.Context, appointmentID, newDate, newTime string) (*models.Appointment, error) {
	if newDate == "" {
		return nil, &scheduling.MissingParameterError{Param: "appointmentDate"}
	}
	if _, err := scheduling.WeekdayName(newDate); err != nil {
		return nil, err
	}
	start, err := scheduling.ParseClock(newTime)
	if err != nil {
		return nil, err
	}

	appt, err := s.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if !appt.IsOccupying() {
		return nil, fmt.Errorf("only active appointments can be rescheduled")
	}
	if err := validateDuration(appt.Duration); err != nil {
		return nil, err
	}

	occupying, err := s.Repo.GetOccupying(ctx, appt.DoctorID, newDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	others := make([]models.Appointment, 0, len(occupying))
	for _, o := range occupying {
		if o.ID != appt.ID {
			others = append(others, o)
		}
	}
	if scheduling.HasConflict(start, appt.Duration, others) {
		return nil, &scheduling.ConflictError{DoctorID: appt.DoctorID, Date: newDate, Time: newTime}
	}

	oldDate := appt.AppointmentDate
	appt.AppointmentDate = newDate
	appt.AppointmentTime = newTime
	appt.Reminders = buildReminders(appt)
	if err := s.Repo.Update(appt); err != nil {
		return nil, fmt.Errorf("failed to reschedule appointment: %w", err)
	}

	s.enqueueReminders(appt)
	s.invalidate(ctx, appt.DoctorID, oldDate)
	s.invalidate(ctx, appt.DoctorID, newDate)
	return appt, nil
}

// Stats returns aggregate appointment numbers scoped to a patient or doctor.
func (s *DefaultAppointmentService) Stats(patientID, doctorID string) (*appointmentRepo.AppointmentStats, error) {
	return s.Repo.Stats(patientID, doctorID)
}
