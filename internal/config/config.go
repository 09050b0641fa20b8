// Package config provides YAML-based tower configuration loading,
// validation and difficulty presets.
package config

import (
	"errors"
	"fmt"
	"time"
)

// TowerConfig contains every tunable of the tower simulation.
// It is loaded once and passed by value into the game, so components never
// share a mutable configuration object.
type TowerConfig struct {
	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Floors     FloorsConfig     `yaml:"floors"`
	Scroll     ScrollConfig     `yaml:"scroll"`
	Combo      ComboConfig      `yaml:"combo"`
	Simulation SimulationConfig `yaml:"simulation"`
	Settings   SettingsConfig   `yaml:"settings"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Skins      []SkinConfig     `yaml:"skins"`
}

// WorldConfig defines the logical canvas in world units.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundOffset float64 `yaml:"ground_offset"` // ground floor y = height - ground_offset
}

// PlayerConfig defines the player body and its spawn point.
type PlayerConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	SpawnYOffset float64 `yaml:"spawn_y_offset"` // spawn y = world height - offset
}

// PhysicsConfig defines per-tick movement constants.
type PhysicsConfig struct {
	Gravity          float64       `yaml:"gravity"`
	JumpPowerBase    float64       `yaml:"jump_power_base"`
	JumpPowerMax     float64       `yaml:"jump_power_max"`
	MoveAcceleration float64       `yaml:"move_acceleration"`
	MoveMaxSpeed     float64       `yaml:"move_max_speed"`
	AirControl       float64       `yaml:"air_control"`
	Friction         float64       `yaml:"friction"`
	WallBounce       float64       `yaml:"wall_bounce"`
	CoyoteTime       time.Duration `yaml:"coyote_time"`
}

// FloorsConfig defines floor geometry and generation margins.
type FloorsConfig struct {
	Height          float64 `yaml:"height"`
	MinWidth        float64 `yaml:"min_width"`
	MaxWidth        float64 `yaml:"max_width"`
	VerticalSpacing float64 `yaml:"vertical_spacing"`
	LandingSlack    float64 `yaml:"landing_slack"`
	Initial         int     `yaml:"initial"` // ground floor included
	ThemeInterval   int     `yaml:"theme_interval"`
	TopUpMargin     float64 `yaml:"top_up_margin"`
	PruneMargin     float64 `yaml:"prune_margin"`
}

// ScrollConfig defines the forced scroll hazard.
type ScrollConfig struct {
	StartFloor   int           `yaml:"start_floor"`
	InitialSpeed float64       `yaml:"initial_speed"`
	Increment    float64       `yaml:"increment"`
	Interval     time.Duration `yaml:"interval"`
	Escalate     bool          `yaml:"escalate"`
	HurryBanner  time.Duration `yaml:"hurry_banner"`
}

// ComboConfig defines the combo window.
type ComboConfig struct {
	Timer     time.Duration `yaml:"timer"`
	MinFloors int           `yaml:"min_floors"`
}

// SimulationConfig defines the fixed-step clock.
type SimulationConfig struct {
	FPS           int           `yaml:"fps"`
	MaxFrameDelta time.Duration `yaml:"max_frame_delta"`
}

// SettingsConfig holds player-facing options.
type SettingsConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`
	PracticeMaxFloor int     `yaml:"practice_max_floor"`
	ScoreboardSize   int     `yaml:"scoreboard_size"`
	CoinsPerFloors   int     `yaml:"coins_per_floors"` // one coin per this many floors climbed
}

// DifficultyConfig names the preset applied on top of the file values.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// SkinConfig describes a purchasable player color.
type SkinConfig struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
	Price int    `yaml:"price"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// IsFixedPreset returns true if the preset disables scroll escalation.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// TickDuration returns the length of one simulation tick.
func (c TowerConfig) TickDuration() time.Duration {
	if c.Simulation.FPS <= 0 {
		return time.Second / 120
	}
	return time.Second / time.Duration(c.Simulation.FPS)
}

// Skin returns the skin with the given id.
func (c TowerConfig) Skin(id string) (SkinConfig, bool) {
	for _, s := range c.Skins {
		if s.ID == id {
			return s, true
		}
	}
	return SkinConfig{}, false
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid tower config")

// Validate rejects configurations the simulation cannot run with.
func (c TowerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.World.Width > 0 && c.World.Height > 0, "world size %vx%v must be positive", c.World.Width, c.World.Height)
	check(c.Player.Width > 0 && c.Player.Height > 0, "player size %vx%v must be positive", c.Player.Width, c.Player.Height)
	check(c.Player.Width < c.World.Width, "player width %v must be below world width %v", c.Player.Width, c.World.Width)
	check(c.Floors.Height > 0, "floor height %v must be positive", c.Floors.Height)
	check(c.Floors.MinWidth > 0, "floor min width %v must be positive", c.Floors.MinWidth)
	check(c.Floors.MinWidth <= c.Floors.MaxWidth, "floor min width %v exceeds max width %v", c.Floors.MinWidth, c.Floors.MaxWidth)
	check(c.Floors.MaxWidth < c.World.Width, "floor max width %v must be below world width %v", c.Floors.MaxWidth, c.World.Width)
	check(c.Floors.VerticalSpacing > 0, "floor spacing %v must be positive", c.Floors.VerticalSpacing)
	check(c.Floors.Initial >= 1, "initial floors %d must be at least 1", c.Floors.Initial)
	check(c.Floors.ThemeInterval > 0, "theme interval %d must be positive", c.Floors.ThemeInterval)
	check(c.Physics.MoveMaxSpeed > 0, "max speed %v must be positive", c.Physics.MoveMaxSpeed)
	check(c.Physics.Gravity > 0, "gravity %v must be positive", c.Physics.Gravity)
	check(c.Physics.Friction > 0 && c.Physics.Friction < 1, "friction %v must be in (0, 1)", c.Physics.Friction)
	check(c.Physics.AirControl > 0 && c.Physics.AirControl < 1, "air control %v must be in (0, 1)", c.Physics.AirControl)
	check(c.Physics.WallBounce >= 0 && c.Physics.WallBounce < 1, "wall bounce %v must be in [0, 1)", c.Physics.WallBounce)
	check(c.Physics.JumpPowerBase <= c.Physics.JumpPowerMax, "jump base %v exceeds jump max %v", c.Physics.JumpPowerBase, c.Physics.JumpPowerMax)
	check(c.Scroll.Interval > 0, "scroll interval %v must be positive", c.Scroll.Interval)
	check(c.Combo.MinFloors >= 1, "combo min floors %d must be at least 1", c.Combo.MinFloors)
	check(c.Simulation.FPS > 0, "fps %d must be positive", c.Simulation.FPS)
	check(c.Simulation.MaxFrameDelta > 0, "max frame delta %v must be positive", c.Simulation.MaxFrameDelta)
	check(c.Settings.SpeedMultiplier > 0, "speed multiplier %v must be positive", c.Settings.SpeedMultiplier)
	check(c.Settings.PracticeMaxFloor >= 1, "practice max floor %d must be at least 1", c.Settings.PracticeMaxFloor)
	check(c.Settings.ScoreboardSize > 0, "scoreboard size %d must be positive", c.Settings.ScoreboardSize)

	seen := make(map[string]bool, len(c.Skins))
	for _, s := range c.Skins {
		check(s.ID != "", "skin with empty id")
		check(!seen[s.ID], "duplicate skin %q", s.ID)
		check(s.Price >= 0, "skin %q has negative price", s.ID)
		seen[s.ID] = true
	}

	return errors.Join(errs...)
}
