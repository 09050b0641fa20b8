package tui

import (
	"time"

	"github.com/vovakirdan/skytower/internal/core"
)

// DefaultHoldWindow is how long a key press counts as held.
// Terminals report presses and auto-repeats but never releases, so a key
// stays down until its repeats stop arriving.
const DefaultHoldWindow = 150 * time.Millisecond

// HeldKeys synthesizes held movement keys from press events.
type HeldKeys struct {
	window time.Duration
	until  map[core.Action]time.Time
}

// NewHeldKeys creates a tracker with the given hold window.
func NewHeldKeys(window time.Duration) *HeldKeys {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HeldKeys{
		window: window,
		until:  make(map[core.Action]time.Time),
	}
}

// Press marks an action held until now plus the window.
// Opposite directions cancel each other.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	switch a {
	case core.ActionLeft:
		delete(h.until, core.ActionRight)
	case core.ActionRight:
		delete(h.until, core.ActionLeft)
	}
	h.until[a] = now.Add(h.window)
}

// Frame returns the actions still held at now.
func (h *HeldKeys) Frame(now time.Time) core.InputFrame {
	in := core.NewInputFrame()
	for a, until := range h.until {
		if now.After(until) {
			delete(h.until, a)
			continue
		}
		in.Set(a)
	}
	return in
}

// Sync forgets actions the simulation released from in.
// A consumed jump stays released until the next press.
func (h *HeldKeys) Sync(in core.InputFrame) {
	for a := range h.until {
		if !in.Has(a) {
			delete(h.until, a)
		}
	}
}

// Clear releases everything.
func (h *HeldKeys) Clear() {
	clear(h.until)
}
