package booking

import (
	"fmt"
	"time"
)

// SlotGranularityMinutes is the smallest bookable unit. Every range must
// start and end on a 30-minute boundary.
const SlotGranularityMinutes = 30

// TimeRange is a half-open interval [Start, End) of minutes-from-midnight
// on a single calendar day. Date is normalized to midnight UTC.
type TimeRange struct {
	Date  time.Time `json:"date"`
	Start int       `json:"start_min"`
	End   int       `json:"end_min"`
}

// NewTimeRange builds a TimeRange with the date normalized to midnight UTC.
func NewTimeRange(date time.Time, startMin, endMin int) TimeRange {
	return TimeRange{
		Date:  time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Start: startMin,
		End:   endMin,
	}
}

// Validate checks the range invariants: start before end, both aligned to
// the slot granularity and within a single day.
func (r TimeRange) Validate() error {
	if r.Start < 0 || r.End > 24*60 {
		return fmt.Errorf("%w: range must fall within a single day", ErrInvalidRange)
	}
	if r.Start >= r.End {
		return fmt.Errorf("%w: start %s is not before end %s", ErrInvalidRange, FormatClock(r.Start), FormatClock(r.End))
	}
	if r.Start%SlotGranularityMinutes != 0 || r.End%SlotGranularityMinutes != 0 {
		return fmt.Errorf("%w: times must align to %d-minute boundaries", ErrInvalidRange, SlotGranularityMinutes)
	}
	return nil
}

// Minutes returns the duration of the range in minutes.
func (r TimeRange) Minutes() int {
	return r.End - r.Start
}

// Overlaps reports whether two half-open ranges on the same date intersect.
// A range ending exactly when another starts does not overlap it.
func (r TimeRange) Overlaps(other TimeRange) bool {
	if !r.Date.Equal(other.Date) {
		return false
	}
	return r.Start < other.End && other.Start < r.End
}

// Equal compares ranges by calendar day and minute bounds.
func (r TimeRange) Equal(other TimeRange) bool {
	return r.Date.Equal(other.Date) && r.Start == other.Start && r.End == other.End
}

// StartTime returns the absolute instant the range begins.
func (r TimeRange) StartTime() time.Time {
	return r.Date.Add(time.Duration(r.Start) * time.Minute)
}

// EndTime returns the absolute instant the range ends.
func (r TimeRange) EndTime() time.Time {
	return r.Date.Add(time.Duration(r.End) * time.Minute)
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s %s-%s", r.Date.Format("2006-01-02"), FormatClock(r.Start), FormatClock(r.End))
}

// ParseClock converts a "15:04" wall-clock string to minutes from midnight.
// "24:00" is accepted so a range can end at midnight.
func ParseClock(s string) (int, error) {
	if s == "24:00" {
		return 24 * 60, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid clock time %q", ErrInvalidRange, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes from midnight to a "15:04" string.
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// ParseDate parses a "2006-01-02" calendar day as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrInvalidRange, s)
	}
	return d, nil
}
