package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseTower(defaultTowerYAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultTowerConfig()) {
		t.Errorf("embedded defaults differ from DefaultTowerConfig:\n%+v\n%+v", cfg, DefaultTowerConfig())
	}
}

func TestDefaultTowerConfigValid(t *testing.T) {
	if err := DefaultTowerConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TowerConfig)
	}{
		{"zero world", func(c *TowerConfig) { c.World.Width = 0 }},
		{"min above max width", func(c *TowerConfig) { c.Floors.MinWidth = 400 }},
		{"zero fps", func(c *TowerConfig) { c.Simulation.FPS = 0 }},
		{"negative multiplier", func(c *TowerConfig) { c.Settings.SpeedMultiplier = -1 }},
		{"zero multiplier", func(c *TowerConfig) { c.Settings.SpeedMultiplier = 0 }},
		{"no floors", func(c *TowerConfig) { c.Floors.Initial = 0 }},
		{"duplicate skin", func(c *TowerConfig) { c.Skins = append(c.Skins, c.Skins[0]) }},
		{"zero interval", func(c *TowerConfig) { c.Scroll.Interval = 0 }},
		{"zero gravity", func(c *TowerConfig) { c.Physics.Gravity = 0 }},
		{"no friction", func(c *TowerConfig) { c.Physics.Friction = 1 }},
		{"zero friction", func(c *TowerConfig) { c.Physics.Friction = 0 }},
		{"full air control", func(c *TowerConfig) { c.Physics.AirControl = 1 }},
		{"energy gaining bounce", func(c *TowerConfig) { c.Physics.WallBounce = 1.2 }},
		{"negative bounce", func(c *TowerConfig) { c.Physics.WallBounce = -0.5 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTowerConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestTickDuration(t *testing.T) {
	cfg := DefaultTowerConfig()
	if got := cfg.TickDuration(); got != time.Second/120 {
		t.Errorf("TickDuration() = %v, expected %v", got, time.Second/120)
	}

	cfg.Simulation.FPS = 60
	if got := cfg.TickDuration(); got != time.Second/60 {
		t.Errorf("TickDuration() at 60fps = %v", got)
	}
}

func TestLoadTowerCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tower.yaml")
	data := []byte("physics:\n  gravity: 0.9\ncombo:\n  timer: 5s\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadTower(path)
	if err != nil {
		t.Fatalf("LoadTower: %v", err)
	}
	if cfg.Physics.Gravity != 0.9 {
		t.Errorf("gravity = %v, expected 0.9", cfg.Physics.Gravity)
	}
	if cfg.Combo.Timer != 5*time.Second {
		t.Errorf("combo timer = %v, expected 5s", cfg.Combo.Timer)
	}
	if cfg.Physics.JumpPowerBase != 12 {
		t.Errorf("unset keys should keep defaults, jump base = %v", cfg.Physics.JumpPowerBase)
	}
}

func TestLoadTowerCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadTower(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTower(bad); err == nil {
		t.Error("malformed custom file should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("simulation:\n  fps: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTower(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("invalid custom file should fail validation, got %v", err)
	}
}

func TestMarshalRoundTripsDurations(t *testing.T) {
	data, err := Marshal(DefaultTowerConfig())
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := parseTower(data)
	if err != nil {
		t.Fatalf("marshalled config does not parse: %v", err)
	}
	if cfg.Scroll.Interval != 30*time.Second {
		t.Errorf("scroll interval = %v after round trip", cfg.Scroll.Interval)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}
	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePreset(%q) error = %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestApplyTowerPreset(t *testing.T) {
	base := DefaultTowerConfig()

	normal := base
	ApplyTowerPreset(&normal, DifficultyNormal)
	if normal.Scroll != base.Scroll {
		t.Errorf("normal preset should keep file values: %+v", normal.Scroll)
	}

	fixed := base
	ApplyTowerPreset(&fixed, DifficultyFixed)
	if fixed.Scroll.Escalate {
		t.Error("fixed preset should disable escalation")
	}
	if fixed.Scroll.InitialSpeed != base.Scroll.InitialSpeed {
		t.Error("fixed preset should keep the initial speed")
	}

	easy := base
	ApplyTowerPreset(&easy, DifficultyEasy)
	hard := base
	ApplyTowerPreset(&hard, DifficultyHard)
	if !(easy.Scroll.InitialSpeed < base.Scroll.InitialSpeed && base.Scroll.InitialSpeed < hard.Scroll.InitialSpeed) {
		t.Errorf("presets should order speeds easy < normal < hard: %v %v %v",
			easy.Scroll.InitialSpeed, base.Scroll.InitialSpeed, hard.Scroll.InitialSpeed)
	}
	if hard.Difficulty.Preset != DifficultyHard {
		t.Errorf("preset should be recorded, got %q", hard.Difficulty.Preset)
	}
}

func TestSkinLookup(t *testing.T) {
	cfg := DefaultTowerConfig()
	if s, ok := cfg.Skin("ember"); !ok || s.Price != 25 {
		t.Errorf("Skin(ember) = %+v, %v", s, ok)
	}
	if _, ok := cfg.Skin("nope"); ok {
		t.Error("unknown skin should not resolve")
	}
}
