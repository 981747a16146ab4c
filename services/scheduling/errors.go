package scheduling

import "fmt"

// MissingParameterError signals a required input was absent. It is raised
// before any data access happens and maps to a client error.
type MissingParameterError struct {
	Param string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter: %s", e.Param)
}

// DoctorNotFoundError signals the referenced doctor does not exist.
type DoctorNotFoundError struct {
	DoctorID string
}

func (e *DoctorNotFoundError) Error() string {
	return fmt.Sprintf("doctor %s not found", e.DoctorID)
}

// ConflictError signals a candidate slot overlaps an active appointment.
// The caller should pick another slot; the core never retries.
type ConflictError struct {
	DoctorID string
	Date     string
	Time     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("doctor %s has a conflicting appointment on %s at %s", e.DoctorID, e.Date, e.Time)
}

// InvalidClockError signals a malformed "HH:MM" string.
type InvalidClockError struct {
	Value string
}

func (e *InvalidClockError) Error() string {
	return fmt.Sprintf("invalid HH:MM time value %q", e.Value)
}
