// Package tower implements the vertically scrolling platformer simulation.
// The player jumps between generated floors while the world scrolls down;
// skipping floors in quick succession builds a scoring combo.
//
// The simulation is deterministic for a given seed and input sequence.
// All timers read a simulated clock advanced once per tick.
package tower

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skytower/internal/config"
	"github.com/vovakirdan/skytower/internal/core"
	"github.com/vovakirdan/skytower/internal/registry"
)

// Mode identifiers used by the registry and score storage.
const (
	ModeNormal   = "tower"
	ModePractice = "tower_practice"
)

// Package-level options set by the CLI before games are created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	speedMultiplier  float64
	practice         PracticeSettings
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetSpeedMultiplier overrides the configured speed multiplier when positive.
func SetSpeedMultiplier(mult float64) {
	speedMultiplier = mult
}

// SetPractice sets the settings used by practice runs.
func SetPractice(p PracticeSettings) {
	practice = p
}

// SetLogger sets the logger for run lifecycle events.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// LoadConfig resolves the tower configuration from the package options.
// Load failures fall back to the built-in defaults.
func LoadConfig() config.TowerConfig {
	cfg, err := config.LoadTower(configPath)
	if err != nil {
		logger.Warn("using default config", "path", configPath, "err", err)
		cfg = config.DefaultTowerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyTowerPreset(&cfg, difficultyPreset)
	}
	if speedMultiplier > 0 {
		cfg.Settings.SpeedMultiplier = speedMultiplier
	}
	return cfg
}

// Game is one tower run plus everything needed to restart it.
type Game struct {
	cfg      config.TowerConfig
	runtime  core.RuntimeConfig
	practice *PracticeSettings

	clock    core.SimClock
	rng      *rand.Rand
	body     Body
	floors   *FloorSet
	progress Progression
	scroll   Scroll
	cameraY  float64

	startFloor int // practice start, 0 for a normal run

	move    integrator
	collide resolver

	tickCount int
	paused    bool
	gameOver  bool
	skin      core.Color
}

// New creates a normal-mode game from the package options.
func New() *Game {
	return NewWithConfig(LoadConfig(), nil)
}

// NewPractice creates a practice-mode game from the package options.
func NewPractice() *Game {
	return NewPracticeWith(practice)
}

// NewPracticeWith creates a practice-mode game with explicit settings.
// An out-of-range start floor falls back to floor 1.
func NewPracticeWith(p PracticeSettings) *Game {
	cfg := LoadConfig()
	p.StartFloor = NormalizeStartFloor(p.StartFloor, cfg.Settings.PracticeMaxFloor)
	return NewWithConfig(cfg, &p)
}

// NewWithConfig creates a game with an explicit configuration.
// A nil practice means a normal run.
func NewWithConfig(cfg config.TowerConfig, practice *PracticeSettings) *Game {
	g := &Game{
		cfg:      cfg,
		practice: practice,
		move:     newIntegrator(cfg),
		collide:  newResolver(cfg),
		skin:     core.ColorBrightCyan,
	}
	g.reset(core.DefaultConfig())
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.practice != nil {
		return ModePractice
	}
	return ModeNormal
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.practice != nil {
		return "Sky Tower (Practice)"
	}
	return "Sky Tower"
}

// Config returns the configuration the game runs with.
func (g *Game) Config() config.TowerConfig {
	return g.cfg
}

// Timing returns the fixed step from the simulation config.
func (g *Game) Timing() core.Timing {
	return core.Timing{
		Tick:          g.cfg.TickDuration(),
		MaxFrameDelta: g.cfg.Simulation.MaxFrameDelta,
	}
}

// SetSkin sets the player color used by the terminal renderer.
func (g *Game) SetSkin(c core.Color) {
	g.skin = c
}

// Reset discards the current run and builds a fresh one.
// Everything is rebuilt before Reset returns, so a renderer reading between
// frames never observes a half-reset run.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.reset(rc)
	logger.Info("run started", "mode", g.ID(), "seed", rc.Seed, "start_floor", g.progress.CurrentFloor, "fixed_speed", g.scroll.bypassed)
}

func (g *Game) reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.clock.Reset()
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.floors = NewFloorSet(g.cfg, g.rng)
	g.floors.Seed()

	g.body = Body{
		X:          g.cfg.World.Width / 2,
		Y:          g.cfg.World.Height - g.cfg.Player.SpawnYOffset,
		LastGround: neverGrounded,
	}

	g.startFloor = 0
	bypass := false
	if g.practice != nil {
		g.startFloor = NormalizeStartFloor(g.practice.StartFloor, g.cfg.Settings.PracticeMaxFloor)
		bypass = g.practice.FixedSpeed
	}
	g.progress = NewProgression(g.cfg.Combo, max(g.startFloor, 1))
	g.scroll = NewScroll(g.cfg.Scroll, bypass)
	g.tickCount = 0
	g.cameraY = 0
	g.updateCamera()

	g.paused = false
	g.gameOver = false
}

// Step advances the run by one fixed tick.
func (g *Game) Step(in *core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}
	if in == nil {
		empty := core.NewInputFrame()
		in = &empty
	}

	g.clock.Advance(g.cfg.TickDuration())
	now := g.clock.Now()
	g.tickCount++

	g.move.step(&g.body, in, now)
	if f, ok := g.collide.resolve(&g.body, g.floors.Floors(), now); ok {
		if gained := g.progress.Land(f.Number, now); gained > 0 {
			logger.Debug("landed", "floor", f.Number, "points", gained, "combo", g.progress.Combo.Count)
		}
	}

	g.updateCamera()

	shift, leveledUp := g.scroll.Update(g.progress.CurrentFloor, now)
	if shift != 0 {
		g.floors.Shift(shift)
		g.body.Y += shift
	}
	if leveledUp {
		logger.Debug("scroll speed up", "level", g.scroll.Level, "speed", g.scroll.Speed)
	}

	g.progress.Expire(now)

	g.floors.TopUp(g.cameraY)
	g.floors.Prune(g.cameraY)

	if g.body.Y > g.cameraY+g.cfg.World.Height {
		g.gameOver = true
		s := g.Summary()
		logger.Info("run ended", "mode", g.ID(), "floor", s.Floor, "score", s.Score, "max_combo", s.MaxCombo, "elapsed", s.Elapsed)
	}

	return core.StepResult{State: g.State()}
}

// updateCamera follows the body upward. The camera never moves back down:
// the bottom of the view is the line the player must not fall below.
func (g *Game) updateCamera() {
	target := max(0, g.body.Y+g.cfg.Player.Height-g.cfg.World.Height/2)
	if g.tickCount == 0 || target < g.cameraY {
		g.cameraY = target
	}
}

// SetPaused records the platform's pause state for rendering.
func (g *Game) SetPaused(paused bool) {
	if g.gameOver {
		paused = false
	}
	g.paused = paused
}

// Summary returns the record handed to score storage.
func (g *Game) Summary() core.RunSummary {
	return core.RunSummary{
		Floor:      g.progress.HighestFloor,
		StartFloor: g.startFloor,
		Score:      g.progress.Score,
		MaxCombo:   g.progress.Combo.Max,
		Elapsed:    g.clock.Now(),
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.progress.Score,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Summary:  g.Summary(),
	}
}

// Register both modes with the registry
func init() {
	registry.Register(registry.GameInfo{
		ID:    ModeNormal,
		Title: "Sky Tower",
		Blurb: "Climb until the rising screen catches you",
	}, func() registry.Game {
		return New()
	})
	registry.Register(registry.GameInfo{
		ID:       ModePractice,
		Title:    "Sky Tower (Practice)",
		Blurb:    "Start on any floor, optionally without scrolling",
		Practice: true,
	}, func() registry.Game {
		return NewPractice()
	})
}
