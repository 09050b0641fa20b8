package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skytower/internal/games/tower"
	"github.com/vovakirdan/skytower/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode from an interactive menu",
	Long: `Opens the mode menu. Arrows or j/k move, enter starts the mode and
tab shows the scoreboards. Practice asks for a start floor first.
After a run, b returns here.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	applyTowerOptions()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{
		Store:         store,
		Wallet:        openWallet(logger),
		FloorsPerCoin: tower.LoadConfig().Settings.CoinsPerFloors,
		Logger:        logger,
		AllowBack:     true,
	}
	cfg := runtimeConfig()

	for {
		choice, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = choice.Config

		switch {
		case choice.Quit:
			return nil

		case choice.WantsScoreboard:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				logger.Error("scoreboard failed", "err", err)
			}
			if !back {
				return nil
			}

		default:
			game, err := choice.NewGame()
			if err != nil {
				logger.Error("cannot create game", "mode", choice.GameID, "err", err)
				continue
			}
			cfg.Seed = flagSeed
			back, err := tui.Run(game, cfg, opts)
			if err != nil || !back {
				return err
			}
		}
	}
}
