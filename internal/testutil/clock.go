// Package testutil provides deterministic test doubles for the store's
// collaborators: a fixed clock for reproducible event ids and a scripted
// bridge for exercising persistence failures.
package testutil

import (
	"sync"
	"time"
)

// FixedClock is a thread-safe clock that returns a controlled instant and
// advances only when told to. Each Tick moves it by one millisecond, so
// consecutive event ids are distinct and predictable.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock pinned to the given instant.
func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

// Now returns the current pinned instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Tick advances the clock by one millisecond and returns the new instant.
func (c *FixedClock) Tick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set pins the clock to a new instant.
func (c *FixedClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
