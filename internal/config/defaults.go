package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tower.yaml
var defaultTowerYAML []byte

// DefaultTowerConfig returns the built-in tower configuration.
// It matches defaults/tower.yaml and backs the loader when the embedded file
// cannot be parsed.
func DefaultTowerConfig() TowerConfig {
	return TowerConfig{
		World: WorldConfig{
			Width:        800,
			Height:       600,
			GroundOffset: 100,
		},
		Player: PlayerConfig{
			Width:        40,
			Height:       50,
			SpawnYOffset: 200,
		},
		Physics: PhysicsConfig{
			Gravity:          0.6,
			JumpPowerBase:    12,
			JumpPowerMax:     22,
			MoveAcceleration: 0.8,
			MoveMaxSpeed:     10,
			AirControl:       0.6,
			Friction:         0.85,
			WallBounce:       0.7,
			CoyoteTime:       100 * time.Millisecond,
		},
		Floors: FloorsConfig{
			Height:          20,
			MinWidth:        150,
			MaxWidth:        350,
			VerticalSpacing: 100,
			LandingSlack:    10,
			Initial:         30,
			ThemeInterval:   100,
			TopUpMargin:     500,
			PruneMargin:     200,
		},
		Scroll: ScrollConfig{
			StartFloor:   5,
			InitialSpeed: 0.5,
			Increment:    0.3,
			Interval:     30 * time.Second,
			Escalate:     true,
			HurryBanner:  time.Second,
		},
		Combo: ComboConfig{
			Timer:     3 * time.Second,
			MinFloors: 2,
		},
		Simulation: SimulationConfig{
			FPS:           120,
			MaxFrameDelta: 100 * time.Millisecond,
		},
		Settings: SettingsConfig{
			SpeedMultiplier:  1.0,
			PracticeMaxFloor: 1000,
			ScoreboardSize:   10,
			CoinsPerFloors:   10,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
		Skins: []SkinConfig{
			{ID: "default", Name: "Classic", Color: "bright_cyan", Price: 0},
			{ID: "ember", Name: "Ember", Color: "orange", Price: 25},
			{ID: "moss", Name: "Moss", Color: "bright_green", Price: 50},
			{ID: "royal", Name: "Royal", Color: "bright_magenta", Price: 100},
			{ID: "gold", Name: "Gold", Color: "bright_yellow", Price: 250},
		},
	}
}

// DefaultTowerYAML returns the embedded default YAML.
func DefaultTowerYAML() []byte {
	return defaultTowerYAML
}
