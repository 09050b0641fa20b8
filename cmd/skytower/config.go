package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skytower/internal/config"
	"github.com/vovakirdan/skytower/internal/games/tower"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective tower configuration",
	Long: `Print the configuration a run would use, as YAML.

The file is looked up in order: --config, ~/.skytower/configs/tower.yaml,
./configs/tower.yaml, then the built-in defaults. Difficulty and
speed flags are applied on top.

Examples:
  skytower config > ~/.skytower/configs/tower.yaml
  skytower config --difficulty hard
  skytower config --defaults`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	addTowerFlags(configCmd)
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.DefaultTowerYAML())
		return err
	}

	_, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	applyTowerOptions()
	cfg := tower.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
