package engine

import (
	"time"

	"github.com/vovakirdan/skytower/internal/core"
)

// Simulation is what a Loop drives.
type Simulation interface {
	Reset(cfg core.RuntimeConfig)
	Step(in *core.InputFrame) core.StepResult
	State() core.GameState
	SetPaused(paused bool)
}

// FrameResult reports what one host frame did.
type FrameResult struct {
	Ticks int  // ticks run this frame
	Ended bool // this frame's last tick ended the run
}

// Loop advances a Simulation from host frames.
// It is not safe for concurrent use; hosts call it from their frame callback.
type Loop struct {
	sim     Simulation
	step    *FixedStep
	runtime core.RuntimeConfig
	paused  bool
}

// NewLoop wraps sim with a fixed step of the given timing.
// The simulation is expected to be freshly reset.
func NewLoop(sim Simulation, timing core.Timing, rc core.RuntimeConfig) *Loop {
	return &Loop{
		sim:     sim,
		step:    NewFixedStep(timing.Tick, timing.MaxFrameDelta),
		runtime: rc,
	}
}

// Simulation returns the driven simulation.
func (l *Loop) Simulation() Simulation {
	return l.sim
}

// Paused reports whether the loop is paused.
func (l *Loop) Paused() bool {
	return l.paused
}

// Frame runs the ticks due at now, feeding each the same input frame.
// Nothing runs while paused or after the run ended, and the accumulator is
// left alone.
func (l *Loop) Frame(now time.Time, in *core.InputFrame) FrameResult {
	if l.paused || l.sim.State().GameOver {
		return FrameResult{}
	}

	var res FrameResult
	n := l.step.Advance(now)
	for i := 0; i < n; i++ {
		st := l.sim.Step(in)
		res.Ticks++
		if st.State.GameOver {
			res.Ended = true
			break
		}
	}
	return res
}

// TogglePause flips the pause state and reports the new one.
func (l *Loop) TogglePause(now time.Time) bool {
	if l.paused {
		l.Resume(now)
	} else {
		l.Pause()
	}
	return l.paused
}

// Pause freezes the run. It has no effect once the run ended.
func (l *Loop) Pause() {
	if l.sim.State().GameOver {
		return
	}
	l.paused = true
	l.sim.SetPaused(true)
}

// Resume unfreezes the run. The frame clock restarts at now so the pause
// does not turn into a burst of catch-up ticks.
func (l *Loop) Resume(now time.Time) {
	if !l.paused {
		return
	}
	l.paused = false
	l.sim.SetPaused(false)
	l.step.Restamp(now)
}

// Reset discards the run and starts a new one with the same runtime config.
func (l *Loop) Reset(now time.Time) {
	l.ResetWith(now, l.runtime)
}

// ResetWith discards the run and starts a new one with rc.
func (l *Loop) ResetWith(now time.Time, rc core.RuntimeConfig) {
	l.runtime = rc
	l.sim.Reset(rc)
	l.paused = false
	l.sim.SetPaused(false)
	l.step.Reset()
	l.step.Restamp(now)
}
