package grid

import (
	"fmt"
	"time"
)

// DaysInMonth returns the number of days in the given month.
// Computed as day 0 of the following month, which normalizes to the last
// day of the target month. Correct for variable month lengths and leap years.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartOfMonth returns the first day of the month containing t, with the
// time-of-day zeroed. The location of t is preserved.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysArray returns one entry per calendar day of the month containing t,
// in ascending order. Each entry is a full date at midnight (not a bare day
// number) so downstream day matching is unambiguous.
//
// The slice is built fresh on every call. len(DaysArray(t)) always equals
// DaysInMonth(t.Year(), t.Month()).
func DaysArray(t time.Time) []time.Time {
	total := DaysInMonth(t.Year(), t.Month())
	days := make([]time.Time, 0, total)
	for day := 1; day <= total; day++ {
		days = append(days, time.Date(t.Year(), t.Month(), day, 0, 0, 0, 0, t.Location()))
	}
	return days
}

// PrevMonth returns day 1 of the month before the one containing t.
// January rolls back to December of the previous year.
func PrevMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()-1, 1, 0, 0, 0, 0, t.Location())
}

// NextMonth returns day 1 of the month after the one containing t.
// December rolls over to January of the next year.
func NextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
}

// AddMonths returns day 1 of the month delta months away from the one
// containing t. delta may be negative.
func AddMonths(t time.Time, delta int) time.Time {
	return time.Date(t.Year(), t.Month()+time.Month(delta), 1, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same civil day, comparing
// year, month and day-of-month. Time-of-day is ignored.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DayKey returns the canonical YYYY-MM-DD key for the day containing t.
func DayKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}
