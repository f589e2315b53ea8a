package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestTimeRange_Validate(t *testing.T) {
	d := day("2026-09-01")

	testCases := []struct {
		name       string
		start, end int
		wantErr    bool
	}{
		{"one hour", 18 * 60, 20 * 60, false},
		{"half-hour slot", 9 * 60, 9*60 + 30, false},
		{"whole day", 0, 24 * 60, false},
		{"start equals end", 600, 600, true},
		{"start after end", 660, 600, true},
		{"negative start", -30, 60, true},
		{"past midnight", 23 * 60, 25 * 60, true},
		{"unaligned start", 615, 660, true},
		{"unaligned end", 600, 645, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewTimeRange(d, tc.start, tc.end).Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeRange_Overlaps(t *testing.T) {
	d := day("2026-09-01")
	base := NewTimeRange(d, 10*60, 12*60)

	testCases := []struct {
		name  string
		other TimeRange
		want  bool
	}{
		{"identical", NewTimeRange(d, 10*60, 12*60), true},
		{"contained", NewTimeRange(d, 10*60+30, 11*60), true},
		{"straddles start", NewTimeRange(d, 9*60, 10*60+30), true},
		{"straddles end", NewTimeRange(d, 11*60+30, 13*60), true},
		{"covering", NewTimeRange(d, 9*60, 13*60), true},
		{"adjacent before", NewTimeRange(d, 8*60, 10*60), false},
		{"adjacent after", NewTimeRange(d, 12*60, 14*60), false},
		{"disjoint", NewTimeRange(d, 14*60, 16*60), false},
		{"same clock, other day", NewTimeRange(day("2026-09-02"), 10*60, 12*60), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			// overlap is symmetric
			assert.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}

func TestTimeRange_DateNormalized(t *testing.T) {
	noon := time.Date(2026, 9, 1, 12, 34, 56, 0, time.UTC)
	r := NewTimeRange(noon, 600, 660)

	assert.Equal(t, day("2026-09-01"), r.Date)
	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), r.StartTime())
	assert.Equal(t, time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC), r.EndTime())
	assert.Equal(t, 60, r.Minutes())
}

func TestParseClock(t *testing.T) {
	min, err := ParseClock("18:30")
	require.NoError(t, err)
	assert.Equal(t, 18*60+30, min)

	min, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, min)

	// midnight as a range end
	min, err = ParseClock("24:00")
	require.NoError(t, err)
	assert.Equal(t, 24*60, min)

	_, err = ParseClock("24:30")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = ParseClock("6pm")
	assert.ErrorIs(t, err, ErrInvalidRange)

	assert.Equal(t, "18:30", FormatClock(18*60+30))
	assert.Equal(t, "24:00", FormatClock(24*60))
	assert.Equal(t, "00:00", FormatClock(0))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, day("2026-09-01"), d)

	_, err = ParseDate("01/09/2026")
	assert.ErrorIs(t, err, ErrInvalidRange)
}
