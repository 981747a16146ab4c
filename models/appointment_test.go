package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOccupying(t *testing.T) {
	occupying := []string{StatusScheduled, StatusConfirmed, StatusInProgress}
	closed := []string{StatusCompleted, StatusCancelled, StatusNoShow}

	for _, status := range occupying {
		a := Appointment{Status: status}
		assert.True(t, a.IsOccupying(), status)
	}
	for _, status := range closed {
		a := Appointment{Status: status}
		assert.False(t, a.IsOccupying(), status)
	}
}

func TestStartsAt(t *testing.T) {
	a := Appointment{AppointmentDate: "2025-01-06", AppointmentTime: "14:30"}

	start, err := a.StartsAt(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 6, 14, 30, 0, 0, time.UTC), start)

	a.AppointmentTime = "2pm"
	_, err = a.StartsAt(time.UTC)
	assert.Error(t, err)
}

func TestCanBeCancelled(t *testing.T) {
	now := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)

	a := Appointment{
		AppointmentDate: "2025-01-08",
		AppointmentTime: "10:00",
		Status:          StatusScheduled,
	}
	assert.True(t, a.CanBeCancelled(now))

	// Exactly inside the 24 hour window.
	a.AppointmentDate = "2025-01-07"
	a.AppointmentTime = "08:00"
	assert.False(t, a.CanBeCancelled(now))

	// Far enough out, but already confirmed.
	a.AppointmentDate = "2025-01-10"
	a.Status = StatusConfirmed
	assert.False(t, a.CanBeCancelled(now))

	a.Status = StatusScheduled
	a.AppointmentTime = "bad"
	assert.False(t, a.CanBeCancelled(now))
}
