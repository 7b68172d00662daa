package controller

import (
	"sync"
	"time"

	"github.com/roach88/almanac/internal/event"
	"github.com/roach88/almanac/internal/grid"
	"github.com/roach88/almanac/internal/store"
)

// DayView is one grid cell: a calendar day, the events bucketed onto it,
// and whether it is the highlighted day.
type DayView struct {
	Date     time.Time
	Events   []event.Event
	Selected bool
}

// Controller pairs the day grid with the event store and tracks the
// ephemeral view state (reference month, selected day, editor session).
type Controller struct {
	mu    sync.Mutex
	store *store.Store

	reference time.Time // day 1 of the displayed month
	selected  time.Time // highlighted day
	session   *Session  // nil when the editor is closed
}

// New creates a controller positioned on the month containing today, with
// today selected.
func New(s *store.Store, today time.Time) *Controller {
	return &Controller{
		store:     s,
		reference: grid.StartOfMonth(today),
		selected:  today,
	}
}

// RenderableDays returns one DayView per day of the displayed month, in
// ascending order, pairing each day with its events in collection order.
func (c *Controller) RenderableDays() []DayView {
	c.mu.Lock()
	reference := c.reference
	selected := c.selected
	c.mu.Unlock()

	days := grid.DaysArray(reference)
	views := make([]DayView, 0, len(days))
	for _, day := range days {
		views = append(views, DayView{
			Date:     day,
			Events:   c.store.EventsOnDay(day),
			Selected: grid.SameDay(day, selected),
		})
	}
	return views
}

// MonthLabel returns the header label for the displayed month.
func (c *Controller) MonthLabel() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reference.Format("January 2006")
}

// Reference returns day 1 of the displayed month.
func (c *Controller) Reference() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reference
}

// SelectedDay returns the highlighted day.
func (c *Controller) SelectedDay() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// GoToMonth moves the displayed month by delta months (negative for past),
// pinned to day 1. Year boundaries roll over.
func (c *Controller) GoToMonth(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reference = grid.AddMonths(c.reference, delta)
}

// JumpTo repositions the displayed month to the one containing t.
// Used by the month/year picker.
func (c *Controller) JumpTo(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reference = grid.StartOfMonth(t)
}

// SelectDay highlights the given day. Selection is view state only; it does
// not move the displayed month.
func (c *Controller) SelectDay(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = t
}

// AddEvent routes an add intent straight to the store, bypassing the editor
// session. Used by surfaces that collect the fields themselves.
func (c *Controller) AddEvent(title, desc string, date time.Time) (event.Event, error) {
	return c.store.Add(event.NewEventInput{Title: title, Desc: desc, Date: date})
}

// DeleteEvent routes a delete intent to the store.
func (c *Controller) DeleteEvent(id int64) error {
	return c.store.Delete(id)
}

// UpdateEvent routes an update intent to the store.
func (c *Controller) UpdateEvent(ev event.Event) error {
	return c.store.Update(ev)
}
