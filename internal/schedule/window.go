// Package schedule provides the half-open time window value type used by
// every booking operation.
package schedule

import (
	"fmt"
	"time"
)

const (
	dateLayout  = "02.01" // day.month, no year on the wire
	clockLayout = "15:04"
)

// Window is a half-open interval [Start, End) in UTC.
type Window struct {
	Start time.Time `json:"start" bson:"start"`
	End   time.Time `json:"end" bson:"end"`
}

// Parse combines a day-month date with two clock times into a UTC window.
// The date is always resolved to the current calendar year; cross-year
// bookings are not supported.
func Parse(dateStr, startStr, endStr string) (Window, error) {
	return parseAt(dateStr, startStr, endStr, time.Now().UTC())
}

func parseAt(dateStr, startStr, endStr string, now time.Time) (Window, error) {
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return Window{}, fmt.Errorf("invalid date %q: expected DD.MM", dateStr)
	}

	start, err := time.Parse(clockLayout, startStr)
	if err != nil {
		return Window{}, fmt.Errorf("invalid start time %q: expected HH:MM", startStr)
	}

	end, err := time.Parse(clockLayout, endStr)
	if err != nil {
		return Window{}, fmt.Errorf("invalid end time %q: expected HH:MM", endStr)
	}

	year := now.Year()
	w := Window{
		Start: time.Date(year, date.Month(), date.Day(), start.Hour(), start.Minute(), 0, 0, time.UTC),
		End:   time.Date(year, date.Month(), date.Day(), end.Hour(), end.Minute(), 0, 0, time.UTC),
	}

	// time.Date normalizes out-of-range dates (Feb 29 in a non-leap year
	// becomes Mar 1). A date that moved does not exist in this year.
	if w.Start.Day() != date.Day() || w.Start.Month() != date.Month() {
		return Window{}, fmt.Errorf("date %q does not exist in year %d", dateStr, year)
	}

	if !w.Start.Before(w.End) {
		return Window{}, fmt.Errorf("start %s must be strictly before end %s", startStr, endStr)
	}

	return w, nil
}

// IsValid is a lightweight pre-check on the clock strings alone: parseable
// and strictly ordered. Parse applies the same checks itself; IsValid is
// the standalone form for callers that have no date to parse.
func IsValid(startStr, endStr string) bool {
	start, err := time.Parse(clockLayout, startStr)
	if err != nil {
		return false
	}
	end, err := time.Parse(clockLayout, endStr)
	if err != nil {
		return false
	}
	return start.Before(end)
}

// Overlaps reports whether the two windows share any instant under
// half-open semantics: touching boundaries do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

// Equal reports whether both endpoints match exactly.
func (w Window) Equal(other Window) bool {
	return w.Start.Equal(other.Start) && w.End.Equal(other.End)
}

// Conflicts is the availability predicate: plain overlap, or the exact
// same slot. The exact-match clause covers degenerate stored windows that
// the strict overlap test would miss.
func (w Window) Conflicts(other Window) bool {
	return w.Overlaps(other) || w.Equal(other)
}
