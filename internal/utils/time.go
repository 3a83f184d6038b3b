package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitlit/internal/constants"
)

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateOf builds local midnight for a zero-based month.
func DateOf(year, zeroBasedMonth, day int, loc *time.Location) time.Time {
	return time.Date(year, time.Month(zeroBasedMonth+1), day, 0, 0, 0, 0, loc)
}

// DaysInMonth returns the number of days in the given zero-based month.
func DaysInMonth(year, zeroBasedMonth int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(zeroBasedMonth+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayGap returns the number of whole calendar days from earlier to later.
// The result is negative if later precedes earlier. Only the calendar date
// of each value is considered, so DST shifts never produce fractional days.
func DayGap(earlier, later time.Time) int {
	ey, em, ed := earlier.Date()
	ly, lm, ld := later.Date()
	a := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	b := time.Date(ly, lm, ld, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// IsSameDay reports whether a and b fall on the same calendar day.
func IsSameDay(a, b time.Time) bool {
	return DayGap(a, b) == 0
}

// ParseDay parses a YYYY-MM-DD string as midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// FormatDay formats t as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}
