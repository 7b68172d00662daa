// Package ics renders the event collection as an iCalendar document, so
// the calendar can be subscribed to from ordinary calendar apps.
package ics

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/roach88/almanac/internal/event"
)

const productID = "-//almanac//calendar//EN"

// Export writes the events as all-day VEVENTs. The day the event denotes is
// what matters; time-of-day is dropped, matching the grid semantics.
//
// Events without a usable date are skipped, mirroring how the grid excludes
// them. UIDs are derived from the event id, which is stable across exports.
func Export(w io.Writer, events []event.Event, calName string, now time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(calName)

	for _, ev := range events {
		if !ev.HasDate() {
			continue
		}

		day := ev.Date.UTC()
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

		ve := cal.AddEvent(fmt.Sprintf("%d@almanac", ev.ID))
		ve.SetDtStampTime(now.UTC())
		ve.SetAllDayStartAt(start)
		ve.SetAllDayEndAt(start.AddDate(0, 0, 1))
		ve.SetSummary(ev.Title)
		if ev.Desc != "" {
			ve.SetDescription(ev.Desc)
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("serialize calendar: %w", err)
	}
	return nil
}
