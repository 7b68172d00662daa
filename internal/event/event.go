package event

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Event is a user-created calendar record.
//
// ID is unique within a store and immutable once assigned. Date carries
// day-granularity meaning: two events on the same civil day belong to the
// same grid cell regardless of their time-of-day components. Dates entering
// through the store are pinned to UTC midnight of their civil day, so the
// day survives the UTC round trip through storage.
type Event struct {
	ID    int64     `json:"id"`
	Title string    `json:"title"`
	Desc  string    `json:"desc"`
	Date  time.Time `json:"date"`
}

// NewEventInput is the user-supplied portion of an event, before the store
// assigns an id.
type NewEventInput struct {
	Title string
	Desc  string
	Date  time.Time
}

// Normalize returns the input with Title and Desc in NFC form and Date
// pinned to UTC midnight of its civil day. Title whitespace is trimmed;
// Desc is kept as typed. The civil day is taken in the date's own location,
// so a local-time 00:30 stays on the day the user picked.
func (in NewEventInput) Normalize() NewEventInput {
	in.Title = norm.NFC.String(strings.TrimSpace(in.Title))
	in.Desc = norm.NFC.String(in.Desc)
	in.Date = CivilDay(in.Date)
	return in
}

// CivilDay returns UTC midnight of the civil day containing t, read in t's
// own location. The zero value passes through unchanged.
func CivilDay(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Validate checks the input against creation-time rules.
// A blank title (empty or whitespace-only) is the single rejection case.
func (in NewEventInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return NewEmptyTitleError()
	}
	return nil
}

// OnDay reports whether the event belongs to the civil day containing t,
// comparing year, month and day-of-month.
func (e Event) OnDay(t time.Time) bool {
	return e.Date.Year() == t.Year() && e.Date.Month() == t.Month() && e.Date.Day() == t.Day()
}

// HasDate reports whether the event carries a usable date. Events restored
// from storage with a missing or unparsable date are excluded from day
// matching rather than causing errors downstream.
func (e Event) HasDate() bool {
	return !e.Date.IsZero()
}
