package store

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/almanac/internal/bridge"
	"github.com/roach88/almanac/internal/codec"
	"github.com/roach88/almanac/internal/event"
)

// Clock supplies the timestamps event ids are derived from.
// Production code uses SystemClock; tests inject a fixed clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

// Store is the event store: the in-memory collection plus the bridge it
// persists through.
//
// All operations are serialized by an internal mutex. The calendar is a
// single-user tool, but the HTTP embedding makes "one action at a time" a
// property the store enforces rather than assumes.
type Store struct {
	mu       sync.RWMutex
	bridge   bridge.Bridge
	clock    Clock
	events   []event.Event
	autosave bool
}

// Option configures a Store at construction.
type Option func(*Store)

// WithClock overrides the id-assignment clock.
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// New creates a Store over the given bridge. The collection starts empty;
// call Load to populate it and EnableAutosave to arm persistence.
func New(b bridge.Bridge, opts ...Option) *Store {
	s := &Store{
		bridge: b,
		clock:  SystemClock(),
		events: []event.Event{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the collection with the decoded contents of the bridge.
// An absent blob leaves the collection empty; a malformed blob is recovered
// as empty and logged, never surfaced. Load does not write back.
func (s *Store) Load() error {
	blob, ok, err := s.bridge.Get(bridge.EventsKey)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	var events []event.Event
	if !ok {
		events = []event.Event{}
	} else {
		events, err = codec.Decode(blob)
		if err != nil {
			slog.Debug("discarding malformed persisted events", "error", err)
		}
	}

	s.mu.Lock()
	s.events = events
	s.mu.Unlock()
	return nil
}

// EnableAutosave arms persistence. Mutations before this call change only
// the in-memory collection; mutations after it re-encode and persist the
// full collection.
func (s *Store) EnableAutosave() {
	s.mu.Lock()
	s.autosave = true
	s.mu.Unlock()
}

// Add validates the input, assigns a fresh id from the clock and appends
// the event to the collection.
//
// A blank title aborts before any mutation: the collection is unchanged and
// nothing is persisted. The returned event carries the assigned id.
func (s *Store) Add(in event.NewEventInput) (event.Event, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return event.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ev := event.Event{
		ID:    s.clock.Now().UnixMilli(),
		Title: in.Title,
		Desc:  in.Desc,
		Date:  in.Date,
	}
	s.events = append(s.events, ev)

	if err := s.saveLocked(); err != nil {
		return ev, err
	}
	return ev, nil
}

// Update replaces the entry whose id matches ev, preserving its position.
// An unknown id is a silent no-op: it can only arise from stale UI state.
// A blank title is rejected the same way Add rejects it.
func (s *Store) Update(ev event.Event) error {
	normalized := event.NewEventInput{Title: ev.Title, Desc: ev.Desc, Date: ev.Date}.Normalize()
	if err := normalized.Validate(); err != nil {
		return err
	}
	ev.Title = normalized.Title
	ev.Desc = normalized.Desc
	ev.Date = normalized.Date

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.events {
		if s.events[i].ID == ev.ID {
			s.events[i] = ev
			break
		}
	}
	return s.saveLocked()
}

// Delete removes the entry with the matching id, preserving the relative
// order of the remaining events. An absent id is a no-op.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.events[:0]
	for _, ev := range s.events {
		if ev.ID != id {
			kept = append(kept, ev)
		}
	}
	s.events = kept
	return s.saveLocked()
}

// EventsOnDay returns the events whose date falls on the same civil day as
// t, in collection order. Events without a usable date are excluded rather
// than causing an error. Pure read.
func (s *Store) EventsOnDay(t time.Time) []event.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []event.Event{}
	for _, ev := range s.events {
		if ev.HasDate() && ev.OnDay(t) {
			matched = append(matched, ev)
		}
	}
	return matched
}

// Events returns a copy of the whole collection in insertion order.
func (s *Store) Events() []event.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]event.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Get returns the event with the given id.
func (s *Store) Get(id int64) (event.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ev := range s.events {
		if ev.ID == id {
			return ev, true
		}
	}
	return event.Event{}, false
}

// Save encodes the full current collection and writes it through the
// bridge, regardless of the autosave phase. Full-collection overwrite, not
// incremental.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writeLocked()
}

// saveLocked persists the collection if autosave is armed.
// Caller must hold mu.
func (s *Store) saveLocked() error {
	if !s.autosave {
		return nil
	}
	return s.writeLocked()
}

func (s *Store) writeLocked() error {
	blob, err := codec.Encode(s.events)
	if err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	if err := s.bridge.Set(bridge.EventsKey, blob); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	return nil
}
