package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAvailable(t *testing.T) {
	d := day("2026-09-01")
	taken := []TimeRange{
		NewTimeRange(d, 10*60, 11*60),
		NewTimeRange(d, 14*60, 15*60+30),
	}

	testCases := []struct {
		name      string
		candidate TimeRange
		want      bool
	}{
		{"free morning slot", NewTimeRange(d, 8*60, 9*60), true},
		{"exact collision", NewTimeRange(d, 10*60, 11*60), false},
		{"partial overlap", NewTimeRange(d, 10*60+30, 12*60), false},
		{"straddles two bookings", NewTimeRange(d, 9*60, 16*60), false},
		{"adjacent on both sides", NewTimeRange(d, 11*60, 14*60), true},
		{"ends where booking starts", NewTimeRange(d, 9*60, 10*60), true},
		{"starts where booking ends", NewTimeRange(d, 15*60+30, 17*60), true},
		{"same clock next day", NewTimeRange(day("2026-09-02"), 10*60, 11*60), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsAvailable(tc.candidate, taken))
		})
	}
}

func TestIsAvailable_EmptyCalendar(t *testing.T) {
	d := day("2026-09-01")
	assert.True(t, IsAvailable(NewTimeRange(d, 0, 24*60), nil))
}
