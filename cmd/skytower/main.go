// skytower is a vertically scrolling platformer for the terminal.
//
// Usage:
//
//	skytower play            - Climb the tower
//	skytower practice        - Practice from a chosen floor
//	skytower menu            - Pick a mode interactively
//	skytower scores          - Show the top runs
//	skytower shop            - Spend coins on skins
//	skytower config          - Print the effective configuration
//	skytower serve           - Start SSH server for remote play
//	skytower list            - List the game modes
//
// Global flags:
//
//	--fps <rate>         - Set frame rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.skytower/runs.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skytower/internal/core"
	"github.com/vovakirdan/skytower/internal/games/tower"
	"github.com/vovakirdan/skytower/internal/logging"
	"github.com/vovakirdan/skytower/internal/storage"
	"github.com/vovakirdan/skytower/internal/wallet"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skytower",
	Short: "Sky Tower - climb an endless tower in your terminal",
	Long: `Sky Tower is a vertically scrolling platformer. Jump from floor to
floor, skip floors for combos, and stay ahead of the rising screen.

Examples:
  skytower play
  skytower play --difficulty hard
  skytower practice --start-floor 50
  skytower scores --stats
  skytower serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skytower/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the command logger. While a game owns the terminal,
// logs without --log-file are dropped so they cannot tear the screen.
func newLogger(interactive bool) (logger *log.Logger, closeFn func(), err error) {
	var w io.Writer = os.Stderr
	closeFn = func() {}

	switch {
	case flagLogFile != "":
		f, openErr := logging.OpenFile(flagLogFile)
		if openErr != nil {
			return nil, nil, openErr
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger, err = logging.New(w, "skytower", flagLogLevel)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	tower.SetLogger(logger)
	return logger, closeFn, nil
}

// openStore opens the runs database. A failure is logged and play
// continues without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath, storage.WithLogger(logger))
	if err != nil {
		logger.Warn("runs database unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// openWallet loads the coin wallet. A failure is logged and play
// continues without coins.
func openWallet(logger *log.Logger) *wallet.Wallet {
	items, err := wallet.OpenStore()
	if err != nil {
		logger.Warn("wallet unavailable", "err", err)
		return nil
	}
	return wallet.New(items, tower.LoadConfig().Skins, logger)
}

// runtimeConfig sizes the run to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
