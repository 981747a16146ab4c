package scheduling

import "healthhub/models"

// Overlaps reports whether two half-open minute intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// HasConflict reports whether booking a candidate slot starting at
// candidateStart minutes since midnight for candidateDuration minutes would
// overlap any existing appointment that occupies time. Appointments whose
// status is completed, cancelled or no-show never conflict. Returns on the
// first overlap found.
//
// Appointments with an unparseable time are skipped rather than treated as
// occupying; malformed documents cannot block a whole day.
func HasConflict(candidateStart, candidateDuration int, existing []models.Appointment) bool {
	candidateEnd := candidateStart + candidateDuration

	for i := range existing {
		appt := &existing[i]
		if !appt.IsOccupying() {
			continue
		}
		apptStart, err := ParseClock(appt.AppointmentTime)
		if err != nil {
			continue
		}
		duration := appt.Duration
		if duration <= 0 {
			duration = DefaultSlotMinutes
		}
		if Overlaps(candidateStart, candidateEnd, apptStart, apptStart+duration) {
			return true
		}
	}
	return false
}
