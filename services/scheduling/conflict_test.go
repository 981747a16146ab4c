package scheduling

import (
	"testing"

	"healthhub/models"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	// Identical intervals.
	assert.True(t, Overlaps(540, 570, 540, 570))
	// Partial overlap, both directions.
	assert.True(t, Overlaps(540, 570, 555, 585))
	assert.True(t, Overlaps(555, 585, 540, 570))
	// Containment, both directions.
	assert.True(t, Overlaps(540, 600, 555, 570))
	assert.True(t, Overlaps(555, 570, 540, 600))
	// Back-to-back intervals share only a boundary.
	assert.False(t, Overlaps(540, 570, 570, 600))
	assert.False(t, Overlaps(570, 600, 540, 570))
	// Disjoint.
	assert.False(t, Overlaps(540, 570, 600, 630))
}

func appt(timeStr, status string, duration int) models.Appointment {
	return models.Appointment{
		AppointmentTime: timeStr,
		Status:          status,
		Duration:        duration,
	}
}

func TestHasConflictOccupyingStatuses(t *testing.T) {
	for _, status := range []string{models.StatusScheduled, models.StatusConfirmed, models.StatusInProgress} {
		existing := []models.Appointment{appt("10:00", status, 30)}
		assert.True(t, HasConflict(600, 30, existing), "status %s", status)
	}
}

func TestHasConflictIgnoresClosedStatuses(t *testing.T) {
	for _, status := range []string{models.StatusCompleted, models.StatusCancelled, models.StatusNoShow} {
		existing := []models.Appointment{appt("10:00", status, 30)}
		assert.False(t, HasConflict(600, 30, existing), "status %s", status)
	}
}

// Back-to-back bookings never conflict.
func TestHasConflictBackToBack(t *testing.T) {
	existing := []models.Appointment{appt("10:00", models.StatusScheduled, 30)}

	assert.False(t, HasConflict(630, 30, existing)) // 10:30 right after
	assert.False(t, HasConflict(570, 30, existing)) // 09:30 right before
	assert.True(t, HasConflict(615, 30, existing))  // 10:15 overlaps
}

func TestHasConflictPartialOverlapAcrossDurations(t *testing.T) {
	// 10:00 for 60 minutes blocks every slot starting before 11:00.
	existing := []models.Appointment{appt("10:00", models.StatusConfirmed, 60)}

	assert.True(t, HasConflict(630, 30, existing))  // 10:30
	assert.True(t, HasConflict(585, 30, existing))  // 09:45 runs into 10:00
	assert.False(t, HasConflict(660, 30, existing)) // 11:00
}

func TestHasConflictDefaultDuration(t *testing.T) {
	// Zero duration falls back to the default slot length.
	existing := []models.Appointment{appt("10:00", models.StatusScheduled, 0)}

	assert.True(t, HasConflict(615, 30, existing))  // 10:15
	assert.False(t, HasConflict(630, 30, existing)) // 10:30
}

func TestHasConflictSkipsMalformedTimes(t *testing.T) {
	existing := []models.Appointment{
		appt("bogus", models.StatusScheduled, 30),
		appt("", models.StatusConfirmed, 30),
	}
	assert.False(t, HasConflict(600, 30, existing))
}

func TestHasConflictEmpty(t *testing.T) {
	assert.False(t, HasConflict(600, 30, nil))
}
