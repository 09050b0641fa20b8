// skytower-gui plays Sky Tower in a desktop window.
//
// Usage:
//
//	skytower-gui                          - Normal run
//	skytower-gui --practice --start-floor 40
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skytower/internal/core"
	"github.com/vovakirdan/skytower/internal/games/tower"
	"github.com/vovakirdan/skytower/internal/logging"
	"github.com/vovakirdan/skytower/internal/platform/gui"
	"github.com/vovakirdan/skytower/internal/storage"
	"github.com/vovakirdan/skytower/internal/wallet"
)

var (
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagConfig     string
	flagDifficulty string
	flagSpeed      float64
	flagPractice   bool
	flagStartFloor string
	flagFixedSpeed bool
	flagScale      float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skytower-gui",
	Short: "Sky Tower in a desktop window",
	Long: `Play Sky Tower with ebiten graphics. Runs and coins are shared with
the terminal version.

Controls:
  Left/Right, A/D    - Move
  Space/Up/W         - Jump
  P/Esc              - Pause
  R                  - Restart (after game over)
  Q                  - Quit`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	f.StringVar(&flagDBPath, "db", "~/.skytower/runs.db", "Path to runs database")
	f.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	f.StringVar(&flagConfig, "config", "", "Path to custom tower config YAML")
	f.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	f.Float64Var(&flagSpeed, "speed", 0, "Speed multiplier (0 = from config)")
	f.BoolVar(&flagPractice, "practice", false, "Start a practice run")
	f.StringVar(&flagStartFloor, "start-floor", "1", "Practice start floor")
	f.BoolVar(&flagFixedSpeed, "fixed-speed", false, "Practice without the rising screen")
	f.Float64Var(&flagScale, "scale", 1, "Window size relative to the world")
}

func run(_ *cobra.Command, _ []string) error {
	logger, err := logging.New(os.Stderr, "skytower-gui", flagLogLevel)
	if err != nil {
		return err
	}
	tower.SetLogger(logger)
	tower.SetConfigPath(flagConfig)
	tower.SetDifficultyPreset(flagDifficulty)
	tower.SetSpeedMultiplier(flagSpeed)

	cfg := tower.LoadConfig()
	var practice *tower.PracticeSettings
	if flagPractice {
		practice = &tower.PracticeSettings{
			StartFloor: tower.ParseStartFloor(flagStartFloor, cfg.Settings.PracticeMaxFloor),
			FixedSpeed: flagFixedSpeed,
		}
	}
	sim := tower.NewWithConfig(cfg, practice)

	opts := gui.Options{
		FloorsPerCoin: cfg.Settings.CoinsPerFloors,
		Logger:        logger,
		Scale:         flagScale,
	}
	if store, err := storage.Open(flagDBPath, storage.WithLogger(logger)); err != nil {
		logger.Warn("runs database unavailable", "path", flagDBPath, "err", err)
	} else {
		defer store.Close()
		opts.Store = store
	}
	if items, err := wallet.OpenStore(); err != nil {
		logger.Warn("wallet unavailable", "err", err)
	} else {
		opts.Wallet = wallet.New(items, cfg.Skins, logger)
	}

	rc := core.DefaultConfig()
	rc.Seed = flagSeed
	return gui.Run(sim, rc, opts)
}
