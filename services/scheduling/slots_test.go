package scheduling

import (
	"testing"

	"healthhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekWith(day string, entry models.DayAvailability) models.WeeklyAvailability {
	return models.WeeklyAvailability{day: entry}
}

func TestGenerateSlotsFullDay(t *testing.T) {
	week := weekWith("monday", models.DayAvailability{
		IsAvailable:         true,
		StartTime:           "09:00",
		EndTime:             "17:00",
		SlotDurationMinutes: 30,
	})

	slots, err := GenerateSlots(week, "monday")
	require.NoError(t, err)
	require.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "09:30", slots[1])
	assert.Equal(t, "16:30", slots[15])
}

func TestGenerateSlotsUnavailableDay(t *testing.T) {
	week := weekWith("sunday", models.DayAvailability{IsAvailable: false})

	slots, err := GenerateSlots(week, "sunday")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsAbsentDay(t *testing.T) {
	week := weekWith("monday", models.DayAvailability{
		IsAvailable: true,
		StartTime:   "09:00",
		EndTime:     "12:00",
	})

	slots, err := GenerateSlots(week, "tuesday")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsCaseInsensitiveDay(t *testing.T) {
	week := weekWith("monday", models.DayAvailability{
		IsAvailable:         true,
		StartTime:           "09:00",
		EndTime:             "10:00",
		SlotDurationMinutes: 30,
	})

	slots, err := GenerateSlots(week, "Monday")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, slots)
}

// A trailing window shorter than the step still yields a slot as long as the
// slot start is before the end time.
func TestGenerateSlotsPartialFinalWindow(t *testing.T) {
	week := weekWith("monday", models.DayAvailability{
		IsAvailable:         true,
		StartTime:           "09:00",
		EndTime:             "10:45",
		SlotDurationMinutes: 30,
	})

	slots, err := GenerateSlots(week, "monday")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slots)
}

func TestGenerateSlotsDefaultDuration(t *testing.T) {
	week := weekWith("monday", models.DayAvailability{
		IsAvailable: true,
		StartTime:   "09:00",
		EndTime:     "11:00",
	})

	slots, err := GenerateSlots(week, "monday")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slots)
}

func TestGenerateSlotsCustomDuration(t *testing.T) {
	week := weekWith("friday", models.DayAvailability{
		IsAvailable:         true,
		StartTime:           "08:00",
		EndTime:             "09:00",
		SlotDurationMinutes: 20,
	})

	slots, err := GenerateSlots(week, "friday")
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "08:20", "08:40"}, slots)
}

func TestGenerateSlotsInvalidClock(t *testing.T) {
	week := weekWith("monday", models.DayAvailability{
		IsAvailable: true,
		StartTime:   "9am",
		EndTime:     "17:00",
	})

	_, err := GenerateSlots(week, "monday")
	assert.Error(t, err)
}

func TestGenerateSlotsEmptyWindow(t *testing.T) {
	week := weekWith("monday", models.DayAvailability{
		IsAvailable:         true,
		StartTime:           "12:00",
		EndTime:             "12:00",
		SlotDurationMinutes: 30,
	})

	slots, err := GenerateSlots(week, "monday")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateWindowSlots(t *testing.T) {
	slots, err := GenerateWindowSlots("09:00", "17:00", 30)
	require.NoError(t, err)
	assert.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "16:30", slots[15])
}
