// Package viztest provides fakes for pipeline tests: a manually advanced
// clock, a scripted playback provider, and a recording capture sink.
package viztest

import (
	"sync"
	"time"
)

// ManualClock is a Clock whose time only moves when Advance is called.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock starts at the Unix epoch.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Unix(0, 0)}
}

// Now returns the current fake time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}
