package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skytower/internal/games/tower"
	"github.com/vovakirdan/skytower/internal/wallet"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Spend coins on player skins",
	Long: `List skins, buy them with coins earned from runs, and equip them.

Every run earns one coin per coins_per_floors floors climbed.

Examples:
  skytower shop
  skytower shop buy moss
  skytower shop equip moss`,
	Args: cobra.NoArgs,
	RunE: runShopList,
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy <skin>",
	Short: "Buy a skin",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withWallet(func(w *wallet.Wallet) error {
			if err := w.Buy(args[0]); err != nil {
				return err
			}
			fmt.Printf("Bought %s. Balance: %d coins\n", args[0], w.Balance())
			return nil
		})
	},
}

var shopEquipCmd = &cobra.Command{
	Use:   "equip <skin>",
	Short: "Equip an owned skin",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withWallet(func(w *wallet.Wallet) error {
			err := w.Equip(args[0])
			if errors.Is(err, wallet.ErrNotOwned) {
				return fmt.Errorf("%w (try 'skytower shop buy %s')", err, args[0])
			}
			if err != nil {
				return err
			}
			fmt.Printf("Equipped %s.\n", w.Current().Name)
			return nil
		})
	},
}

func init() {
	shopCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tower config YAML")
	shopCmd.AddCommand(shopBuyCmd)
	shopCmd.AddCommand(shopEquipCmd)
}

func withWallet(fn func(w *wallet.Wallet) error) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	tower.SetConfigPath(flagConfig)
	items, err := wallet.OpenStore()
	if err != nil {
		return err
	}
	return fn(wallet.New(items, tower.LoadConfig().Skins, logger))
}

func runShopList(_ *cobra.Command, _ []string) error {
	return withWallet(func(w *wallet.Wallet) error {
		fmt.Printf("Balance: %d coins\n", w.Balance())
		fmt.Println()
		fmt.Printf("  %-10s  %-14s  %-13s  %-6s  %s\n", "ID", "Name", "Color", "Price", "")
		fmt.Printf("  %-10s  %-14s  %-13s  %-6s  %s\n", "--", "----", "-----", "-----", "")

		current := w.Current().ID
		for _, s := range w.Catalog() {
			status := ""
			switch {
			case s.ID == current:
				status = "equipped"
			case w.Owns(s.ID):
				status = "owned"
			}
			fmt.Printf("  %-10s  %-14s  %-13s  %-6d  %s\n", s.ID, s.Name, s.Color, s.Price, status)
		}
		return nil
	})
}
