package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TowerFile is the configuration file name looked up in each search directory.
const TowerFile = "tower.yaml"

// LoadTower loads the tower configuration.
// Search order: customPath -> ~/.skytower/configs/tower.yaml -> ./configs/tower.yaml -> embedded default.
// Files are decoded over DefaultTowerConfig, so they only need the keys they change.
func LoadTower(customPath string) (TowerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TowerConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseTower(data)
		if err != nil {
			return TowerConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return TowerConfig{}, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(TowerFile); userCfgPath != "" {
		if cfg, ok := tryTowerFile(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryTowerFile(filepath.Join("configs", TowerFile)); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := parseTower(defaultTowerYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultTowerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func tryTowerFile(path string) (TowerConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TowerConfig{}, false
	}
	cfg, err := parseTower(data)
	if err != nil || cfg.Validate() != nil {
		return TowerConfig{}, false
	}
	return cfg, true
}

func parseTower(data []byte) (TowerConfig, error) {
	cfg := DefaultTowerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TowerConfig{}, err
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML.
func Marshal(cfg TowerConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// UserDir returns ~/.skytower, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skytower")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}
