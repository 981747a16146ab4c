package scheduling

import (
	"strings"

	"healthhub/models"
)

// DefaultSlotMinutes is the slot granularity assumed when a template entry
// does not set one.
const DefaultSlotMinutes = 30

// Bounds on a single appointment's duration. Bookings outside this range are
// rejected before any slot check runs.
const (
	MinAppointmentMinutes = 15
	MaxAppointmentMinutes = 180
)

// GenerateSlots produces the ordered candidate slot start times ("HH:MM")
// for one weekday of a doctor's schedule template. An unavailable or absent
// day yields an empty sequence, not an error.
//
// Slots are emitted from startTime every slotDurationMinutes while the
// cursor is strictly before endTime; a trailing window shorter than the
// slot duration therefore produces no slot whose start would reach endTime,
// but a slot may start inside the window and end past it.
func GenerateSlots(availability models.WeeklyAvailability, dayOfWeek string) ([]string, error) {
	day, ok := availability[strings.ToLower(dayOfWeek)]
	if !ok || !day.IsAvailable {
		return nil, nil
	}
	return generateDaySlots(day)
}

func generateDaySlots(day models.DayAvailability) ([]string, error) {
	start, err := ParseClock(day.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(day.EndTime)
	if err != nil {
		return nil, err
	}

	step := day.SlotDurationMinutes
	if step <= 0 {
		step = DefaultSlotMinutes
	}

	var slots []string
	for cursor := start; cursor < end; cursor += step {
		slots = append(slots, FormatClock(cursor))
	}
	return slots, nil
}

// GenerateWindowSlots produces candidate slots for an explicit working
// window, used when a doctor document carries no availability map and the
// configured default window applies.
func GenerateWindowSlots(startTime, endTime string, slotMinutes int) ([]string, error) {
	return generateDaySlots(models.DayAvailability{
		IsAvailable:         true,
		StartTime:           startTime,
		EndTime:             endTime,
		SlotDurationMinutes: slotMinutes,
	})
}
