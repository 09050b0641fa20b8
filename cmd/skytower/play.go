package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skytower/internal/games/tower"
	"github.com/vovakirdan/skytower/internal/platform/tui"
	"github.com/vovakirdan/skytower/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSpeed      float64
	flagStartFloor string
	flagFixedSpeed bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Climb the tower",
	Long: `Start a normal run.

Controls:
  Left/Right, A/D    - Move
  Space/Up/W         - Jump
  P/Esc              - Pause
  R                  - Restart (after game over)
  Ctrl+S             - Screenshot
  Q/Ctrl+C           - Quit

Difficulty options:
  easy   - Slower scroll that speeds up gently
  normal - The configured values
  hard   - Faster scroll from the start
  fixed  - The scroll never speeds up

Examples:
  skytower play
  skytower play --difficulty easy
  skytower play --speed 1.5
  skytower play --config ./my-tower.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return playMode(tower.ModeNormal)
	},
}

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Practice from a chosen floor",
	Long: `Start a practice run. Practice runs are ranked separately.

A start floor outside 1..practice_max_floor falls back to floor 1.

Examples:
  skytower practice --start-floor 100
  skytower practice --start-floor 20 --fixed-speed`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return playMode(tower.ModePractice)
	},
}

func addTowerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tower config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().Float64Var(&flagSpeed, "speed", 0, "Speed multiplier (0 = from config)")
}

func init() {
	addTowerFlags(playCmd)
	addTowerFlags(practiceCmd)
	addTowerFlags(menuCmd)
	practiceCmd.Flags().StringVar(&flagStartFloor, "start-floor", "1", "Floor to start on")
	practiceCmd.Flags().BoolVar(&flagFixedSpeed, "fixed-speed", false, "Disable the rising screen")
}

// applyTowerOptions passes the command flags to the tower package
// before any game is created.
func applyTowerOptions() {
	tower.SetConfigPath(flagConfig)
	tower.SetDifficultyPreset(flagDifficulty)
	tower.SetSpeedMultiplier(flagSpeed)

	cfg := tower.LoadConfig()
	tower.SetPractice(tower.PracticeSettings{
		StartFloor: tower.ParseStartFloor(flagStartFloor, cfg.Settings.PracticeMaxFloor),
		FixedSpeed: flagFixedSpeed,
	})
}

func playMode(mode string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	applyTowerOptions()

	game, err := registry.Create(mode)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{
		Store:         store,
		Wallet:        openWallet(logger),
		FloorsPerCoin: tower.LoadConfig().Settings.CoinsPerFloors,
		Logger:        logger,
	}

	if _, err := tui.Run(game, runtimeConfig(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		return err
	}
	return nil
}
