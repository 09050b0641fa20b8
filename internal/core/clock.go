package core

import "time"

// Clock is a monotonic time source measured from an arbitrary origin.
type Clock interface {
	Now() time.Duration
}

// SimClock is a Clock that only moves when the simulation advances it.
// Every gameplay timer reads it, so pausing the tick loop freezes them all.
type SimClock struct {
	now time.Duration
}

// Now returns the simulated time elapsed since the clock was created or reset.
func (c *SimClock) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward by d. Negative durations are ignored.
func (c *SimClock) Advance(d time.Duration) {
	if d > 0 {
		c.now += d
	}
}

// Reset rewinds the clock to zero.
func (c *SimClock) Reset() {
	c.now = 0
}
