package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skytower/internal/games/tower"
	"github.com/vovakirdan/skytower/internal/registry"
	"github.com/vovakirdan/skytower/internal/storage"
)

var (
	flagScoresMode string
	flagCSV        bool
	flagStats      bool
	flagClear      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the top runs",
	Long: `Display the best runs for a mode, highest score first.

Examples:
  skytower scores
  skytower scores --mode tower_practice
  skytower scores --stats
  skytower scores --csv > runs.csv`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", tower.ModeNormal, "Mode to show: tower or tower_practice")
	scoresCmd.Flags().BoolVar(&flagCSV, "csv", false, "Write the runs as CSV to stdout")
	scoresCmd.Flags().BoolVar(&flagStats, "stats", false, "Show score statistics")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every run of the mode")
}

func runScores(_ *cobra.Command, _ []string) error {
	mode := flagScoresMode
	if !registry.Exists(mode) {
		fmt.Fprintln(os.Stderr, "Run 'skytower list' to see available modes.")
		return fmt.Errorf("unknown mode %q", mode)
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath, storage.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(mode); err != nil {
			return err
		}
		logger.Info("runs cleared", "mode", mode)
		return nil
	}

	runs, err := store.TopRuns(mode, 0)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	if flagCSV {
		return storage.ExportCSV(os.Stdout, runs)
	}

	info, _ := registry.Lookup(mode)
	title := info.Title
	fmt.Printf("Top Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'skytower play' to set the first record!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-6s  %s\n", "Rank", "Score", "Floor", "Combo", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-6s  %s\n", "----", "-----", "-----", "-----", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-6d  x%-5d  %-6s  %s\n",
			i+1, r.Score, r.Floor, r.MaxCombo, formatDuration(r.Duration), r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	if flagStats {
		all, err := store.AllRuns(mode)
		if err != nil {
			return fmt.Errorf("retrieving runs: %w", err)
		}
		st := storage.Summarize(all)
		fmt.Println()
		fmt.Printf("Runs kept:   %d\n", st.Count)
		fmt.Printf("Mean score:  %.1f (sd %.1f)\n", st.MeanScore, st.StdDevScore)
		fmt.Printf("Median:      %.0f   p90: %.0f\n", st.MedianScore, st.P90Score)
		fmt.Printf("Mean floor:  %.1f   best floor: %d\n", st.MeanFloor, st.BestFloor)
		fmt.Printf("Best combo:  x%d\n", st.MaxCombo)
	}
	return nil
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
