package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skytower/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game modes",
	Long:  `Shows every registered mode. Each mode keeps its own scoreboard.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), modeTable(registry.List()))
	},
}

var listHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func modeTable(modes []registry.GameInfo) string {
	if len(modes) == 0 {
		return "No modes registered."
	}

	rows := make([][]string, 0, len(modes))
	for _, m := range modes {
		rows = append(rows, []string{m.ID, m.Title, m.Blurb})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("MODE", "TITLE", "").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	return t.String() + "\n\nStart with 'skytower play' or 'skytower practice'.\n" +
		"Scoreboards: 'skytower scores --mode <mode>'."
}
