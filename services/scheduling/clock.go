package scheduling

import (
	"fmt"
	"strings"
	"time"
)

// All slot arithmetic happens in integer minutes since midnight so that no
// timezone or date-boundary handling leaks into the core.

// ParseClock converts a zero-padded 24-hour "HH:MM" string to minutes since
// midnight. All four digit positions must be ASCII digits; no signs, spaces
// or trailing characters.
func ParseClock(value string) (int, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, &InvalidClockError{Value: value}
	}
	for _, i := range []int{0, 1, 3, 4} {
		if value[i] < '0' || value[i] > '9' {
			return 0, &InvalidClockError{Value: value}
		}
	}
	h := int(value[0]-'0')*10 + int(value[1]-'0')
	m := int(value[3]-'0')*10 + int(value[4]-'0')
	if h > 23 || m > 59 {
		return 0, &InvalidClockError{Value: value}
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as zero-padded "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// WeekdayName resolves a calendar date "YYYY-MM-DD" to the lowercase weekday
// key used by schedule templates.
func WeekdayName(date string) (string, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return strings.ToLower(d.Weekday().String()), nil
}
