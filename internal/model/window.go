package model

import (
	"fmt"
	"time"
)

// DateFormat is the calendar-date layout used throughout the application and
// by the upstream provider's API.
const DateFormat = "2006-01-02"

// DateWindow is an inclusive range of calendar dates. Both bounds are stored
// as UTC midnight; the time component carries no meaning.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateWindow builds a window from two dates, truncating any time component.
func NewDateWindow(start, end time.Time) DateWindow {
	return DateWindow{Start: Day(start), End: Day(end)}
}

// Day truncates a timestamp to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a calendar date in DateFormat.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// IsZero reports whether either bound is unset.
func (w DateWindow) IsZero() bool {
	return w.Start.IsZero() || w.End.IsZero()
}

// Valid reports whether both bounds are set and start does not follow end.
func (w DateWindow) Valid() bool {
	return !w.IsZero() && !w.Start.After(w.End)
}

// Days returns the inclusive number of calendar days the window spans.
// A window whose bounds are the same day spans one day.
func (w DateWindow) Days() int {
	if w.IsZero() {
		return 0
	}
	return int(Day(w.End).Sub(Day(w.Start)).Hours()/24) + 1
}

func (w DateWindow) String() string {
	return w.Start.Format(DateFormat) + ".." + w.End.Format(DateFormat)
}
