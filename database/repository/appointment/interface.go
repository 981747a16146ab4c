package appointmentRepo

import (
	"context"

	"healthhub/models"
)

// AppointmentFilter narrows appointment listings. PatientID/DoctorID scope
// the list to the requesting user's role.
type AppointmentFilter struct {
	PatientID       string
	DoctorID        string
	Status          string
	Department      string
	AppointmentType string
	Date            string
	DateFrom        string
	DateTo          string
	Search          string
	Page            int
	Limit           int
}

// StatusCount is one bucket of a grouped appointment aggregation.
type StatusCount struct {
	Key   string `bson:"_id" json:"key"`
	Count int    `bson:"count" json:"count"`
}

// AppointmentStats summarizes a user's appointment history.
type AppointmentStats struct {
	TotalAppointments int                  `json:"totalAppointments"`
	TodayAppointments int                  `json:"todayAppointments"`
	ByStatus          []StatusCount        `json:"appointmentsByStatus"`
	ByDepartment      []StatusCount        `json:"appointmentsByDepartment"`
	Upcoming          []models.Appointment `json:"upcomingAppointments"`
}

// AppointmentRepository defines data access for appointment documents.
type AppointmentRepository interface {
	// CreateChecked inserts the appointment inside a session transaction
	// after re-checking that no occupying appointment overlaps it. It
	// returns ErrSlotTaken when the slot is no longer free, which makes the
	// conflict check and the insert atomic with respect to concurrent
	// booking attempts.
	CreateChecked(ctx context.Context, appt *models.Appointment) error

	Update(appt *models.Appointment) error
	Delete(id string) error
	GetByID(id string) (*models.Appointment, error)
	GetAll(filter AppointmentFilter) ([]models.Appointment, int64, error)

	// GetOccupying returns the appointments for (doctorID, date) whose
	// status still blocks time: scheduled, confirmed or in-progress.
	GetOccupying(ctx context.Context, doctorID, date string) ([]models.Appointment, error)

	Stats(patientID, doctorID string) (*AppointmentStats, error)
	MarkReminderSent(appointmentID string, reminderIndex int) error
}
