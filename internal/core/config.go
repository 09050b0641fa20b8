package core

import "time"

// RuntimeConfig is what a platform tells a game when a run starts.
type RuntimeConfig struct {
	ScreenW, ScreenH int   // character cells available to Render
	TickRate         int   // frames per second the platform redraws at
	Seed             int64 // floor generator seed; 0 lets the platform pick one
}

// DefaultConfig is an 80x24 terminal redrawn at 60 frames per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// Timing is the fixed step a game wants to be driven at.
type Timing struct {
	Tick          time.Duration
	MaxFrameDelta time.Duration // wall time one host frame may consume at most
}

// RunSummary describes a finished (or running) climb. It is what gets
// stored and credited when a run ends.
type RunSummary struct {
	Floor      int // highest floor reached
	StartFloor int // practice start floor, 0 for a normal run
	Score      int
	MaxCombo   int
	Elapsed    time.Duration // simulated time, pauses excluded
}

// GameState is the status a platform polls between ticks.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
	Summary  RunSummary
}

// StepResult reports the state after one tick.
type StepResult struct {
	State GameState
}
