package config

import (
	"fmt"
	"time"
)

// scrollPreset scales the scroll hazard for one difficulty level.
type scrollPreset struct {
	startFloor   int
	initialSpeed float64
	increment    float64
	interval     time.Duration
}

// Normal keeps the file values, so it has no entry.
var scrollPresets = map[DifficultyPreset]scrollPreset{
	DifficultyEasy: {
		startFloor:   8,
		initialSpeed: 0.35,
		increment:    0.2,
		interval:     45 * time.Second,
	},
	DifficultyHard: {
		startFloor:   3,
		initialSpeed: 0.8,
		increment:    0.4,
		interval:     20 * time.Second,
	},
}

// ParsePreset resolves a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// ApplyTowerPreset modifies the scroll hazard based on a difficulty preset.
// The fixed preset keeps the initial speed but never escalates it.
func ApplyTowerPreset(cfg *TowerConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
	if IsFixedPreset(preset) {
		cfg.Scroll.Escalate = false
		return
	}

	cfg.Scroll.Escalate = true
	p, ok := scrollPresets[preset]
	if !ok {
		return
	}
	cfg.Scroll.StartFloor = p.startFloor
	cfg.Scroll.InitialSpeed = p.initialSpeed
	cfg.Scroll.Increment = p.increment
	cfg.Scroll.Interval = p.interval
}
