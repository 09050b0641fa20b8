// Package registry maps mode ids to game factories.
// Each mode registers itself from an init function, so the platforms and
// the CLI can list and create modes without importing their packages.
// Every mode keeps its own scoreboard, keyed by its id.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/skytower/internal/core"
)

// Game is what a platform drives: a fixed-step simulation that renders
// into a character screen. Games never touch the terminal or the clock.
type Game interface {
	// ID is the mode id, e.g. "tower" or "tower_practice".
	ID() string
	Title() string

	// Reset discards the current run and starts a new one.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// The game may release held actions it consumed.
	Step(in *core.InputFrame) core.StepResult

	Render(dst *core.Screen)
	State() core.GameState

	// SetPaused records whether the platform has frozen the tick loop.
	SetPaused(paused bool)

	// Timing returns the fixed step the game expects to be driven at.
	Timing() core.Timing
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID       string
	Title    string
	Blurb    string // one line for menus and `list`
	Practice bool   // runs start from player-chosen settings
}

// Factory creates a fresh game for a mode.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a mode. It panics on an empty or duplicate id.
func Register(info GameInfo, f Factory) {
	if info.ID == "" {
		panic("registry: empty mode id")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[info.ID]; dup {
		panic(fmt.Sprintf("registry: mode %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns every registered mode, sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Lookup returns the description of a mode.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a new game for the mode id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether a mode is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
