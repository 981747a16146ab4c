package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"09:30", 570, false},
		{"17:00", 1020, false},
		{"23:59", 1439, false},
		{"9:00", 0, true},   // not zero padded
		{"09:5", 0, true},   // too short
		{"24:00", 0, true},  // hour out of range
		{"12:60", 0, true},  // minute out of range
		{"12-30", 0, true},  // wrong separator
		{"ab:cd", 0, true},  // not numeric
		{"09:0a", 0, true},  // trailing garbage in minutes
		{"0a:00", 0, true},  // trailing garbage in hours
		{"+9:30", 0, true},  // sign instead of digit
		{" 9:30", 0, true},  // space instead of digit
		{"", 0, true},       // empty
		{"09:000", 0, true}, // too long
	}

	for _, tc := range cases {
		got, err := ParseClock(tc.input)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.input)
			assert.IsType(t, &InvalidClockError{}, err, "input %q", tc.input)
			continue
		}
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:00", FormatClock(540))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "16:30", FormatClock(990))
	assert.Equal(t, "23:59", FormatClock(1439))
}

func TestFormatClockRoundTrip(t *testing.T) {
	for _, minutes := range []int{0, 1, 59, 60, 540, 989, 1439} {
		parsed, err := ParseClock(FormatClock(minutes))
		require.NoError(t, err)
		assert.Equal(t, minutes, parsed)
	}
}

func TestWeekdayName(t *testing.T) {
	day, err := WeekdayName("2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, "monday", day)

	day, err = WeekdayName("2025-01-12")
	require.NoError(t, err)
	assert.Equal(t, "sunday", day)

	_, err = WeekdayName("06-01-2025")
	assert.Error(t, err)

	_, err = WeekdayName("not-a-date")
	assert.Error(t, err)
}
