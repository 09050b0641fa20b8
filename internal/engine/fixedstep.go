// Package engine turns host frame timestamps into fixed simulation ticks.
// It owns pause, resume and reset so the simulation itself never sees
// wall-clock time.
package engine

import "time"

// FixedStep is a fixed-timestep accumulator.
type FixedStep struct {
	tick     time.Duration
	maxDelta time.Duration

	acc     time.Duration
	last    time.Time
	started bool
}

// NewFixedStep creates an accumulator producing ticks of length tick.
// Frame deltas longer than maxDelta are clamped to it.
func NewFixedStep(tick, maxDelta time.Duration) *FixedStep {
	if tick <= 0 {
		tick = time.Second / 120
	}
	if maxDelta <= 0 {
		maxDelta = 100 * time.Millisecond
	}
	return &FixedStep{tick: tick, maxDelta: maxDelta}
}

// Tick returns the tick length.
func (s *FixedStep) Tick() time.Duration {
	return s.tick
}

// Accumulated returns the wall time not yet consumed by ticks.
func (s *FixedStep) Accumulated() time.Duration {
	return s.acc
}

// Advance records a frame at now and returns how many ticks are due.
// The first frame only records its timestamp.
func (s *FixedStep) Advance(now time.Time) int {
	if !s.started {
		s.Restamp(now)
		return 0
	}

	delta := now.Sub(s.last)
	s.last = now
	if delta < 0 {
		delta = 0
	}
	if delta > s.maxDelta {
		delta = s.maxDelta
	}

	s.acc += delta
	n := int(s.acc / s.tick)
	s.acc -= time.Duration(n) * s.tick
	return n
}

// Restamp makes now the previous frame time without accumulating anything.
func (s *FixedStep) Restamp(now time.Time) {
	s.last = now
	s.started = true
}

// Reset drops the accumulator and forgets the previous frame.
func (s *FixedStep) Reset() {
	s.acc = 0
	s.last = time.Time{}
	s.started = false
}
