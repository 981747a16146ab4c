package models

import "time"

// Appointment status values.
const (
	StatusScheduled  = "scheduled"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no-show"
)

// Payment status values for an appointment.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentPartial = "partial"
	PaymentWaived  = "waived"
)

// OccupyingStatuses are the appointment statuses that block a doctor's time.
// Completed, cancelled and no-show appointments never block future bookings.
var OccupyingStatuses = []string{StatusScheduled, StatusConfirmed, StatusInProgress}

// LabTestOrder is a test ordered during an appointment.
type LabTestOrder struct {
	Test      string `bson:"test" json:"test"`
	Status    string `bson:"status" json:"status"`
	Result    string `bson:"result,omitempty" json:"result,omitempty"`
	LabReport string `bson:"labReport,omitempty" json:"labReport,omitempty"`
}

// Insurance covers part of an appointment's cost.
type Insurance struct {
	Provider     string  `bson:"provider,omitempty" json:"provider,omitempty"`
	PolicyNumber string  `bson:"policyNumber,omitempty" json:"policyNumber,omitempty"`
	Coverage     float64 `bson:"coverage,omitempty" json:"coverage,omitempty"`
}

// Reminder is a pending or sent notification for an appointment.
type Reminder struct {
	Type         string    `bson:"type" json:"type"` // email, sms or push
	ScheduledFor time.Time `bson:"scheduledFor" json:"scheduledFor"`
	Sent         bool      `bson:"sent" json:"sent"`
}

// Appointment is one booked consultation slot.
// AppointmentDate is a calendar date "YYYY-MM-DD" with no time component;
// AppointmentTime is a zero-padded "HH:MM" local start time.
type Appointment struct {
	ID              string         `bson:"id" json:"id"`
	PatientID       string         `bson:"patient" json:"patient"`
	DoctorID        string         `bson:"doctor" json:"doctor"`
	HospitalID      string         `bson:"hospital" json:"hospital"`
	AppointmentDate string         `bson:"appointmentDate" json:"appointmentDate"`
	AppointmentTime string         `bson:"appointmentTime" json:"appointmentTime"`
	Duration        int            `bson:"duration" json:"duration"`
	Department      string         `bson:"department" json:"department"`
	AppointmentType string         `bson:"appointmentType" json:"appointmentType"`
	Status          string         `bson:"status" json:"status"`
	Reason          string         `bson:"reason" json:"reason"`
	Symptoms        []string       `bson:"symptoms,omitempty" json:"symptoms,omitempty"`
	Notes           string         `bson:"notes,omitempty" json:"notes,omitempty"`
	DoctorNotes     string         `bson:"doctorNotes,omitempty" json:"doctorNotes,omitempty"`
	Diagnosis       string         `bson:"diagnosis,omitempty" json:"diagnosis,omitempty"`
	PrescriptionID  string         `bson:"prescription,omitempty" json:"prescription,omitempty"`
	LabTests        []LabTestOrder `bson:"labTests,omitempty" json:"labTests,omitempty"`
	FollowUpDate    *time.Time     `bson:"followUpDate,omitempty" json:"followUpDate,omitempty"`
	FollowUpNotes   string         `bson:"followUpNotes,omitempty" json:"followUpNotes,omitempty"`
	Cost            float64        `bson:"cost,omitempty" json:"cost,omitempty"`
	PaymentStatus   string         `bson:"paymentStatus" json:"paymentStatus"`
	Insurance       *Insurance     `bson:"insurance,omitempty" json:"insurance,omitempty"`
	Reminders       []Reminder     `bson:"reminders,omitempty" json:"reminders,omitempty"`
	CreatedAt       time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// IsOccupying reports whether the appointment blocks its time window.
func (a *Appointment) IsOccupying() bool {
	for _, s := range OccupyingStatuses {
		if a.Status == s {
			return true
		}
	}
	return false
}

// StartsAt returns the appointment's absolute start instant in loc.
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", a.AppointmentDate+" "+a.AppointmentTime, loc)
}

// CanBeCancelled reports whether the appointment may still be cancelled:
// only scheduled appointments more than 24 hours away qualify.
func (a *Appointment) CanBeCancelled(now time.Time) bool {
	if a.Status != StatusScheduled {
		return false
	}
	start, err := a.StartsAt(now.Location())
	if err != nil {
		return false
	}
	return start.Sub(now) > 24*time.Hour
}
