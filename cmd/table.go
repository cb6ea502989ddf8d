package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/report"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/storage"
)

var (
	tableSort string
	tablePage int
)

// tableCmd prints the leaderboard the >tab Discord command serves, one page
// at a time.
var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the player leaderboard",
	Args:  cobra.NoArgs,
	RunE:  runTable,
}

func init() {
	tableCmd.Flags().StringVar(&tableSort, "sort", "kd", "sort order: kd or place")
	tableCmd.Flags().IntVar(&tablePage, "page", 1, "leaderboard page, 10 players per page (0 prints everyone)")
}

func runTable(cmd *cobra.Command, args []string) error {
	averages, err := storage.LoadAverages(averagesPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if len(averages) == 0 {
		fmt.Fprintln(os.Stdout, "No statistics yet. Run 'kvstat update' first.")
		return nil
	}

	rows := report.Rows(averages)
	switch tableSort {
	case "kd":
		report.SortByKD(rows)
	case "place":
		report.SortByPlace(rows)
	default:
		return fmt.Errorf("unknown sort %q (use kd or place)", tableSort)
	}

	if tablePage == 0 {
		report.PrintLeaderboard(os.Stdout, rows, 0)
		fmt.Fprintf(os.Stdout, "\n%d player(s) rated.\n", len(rows))
		return nil
	}

	const perPage = 10
	pages := (len(rows) + perPage - 1) / perPage
	page := min(max(tablePage, 1), pages)
	start := (page - 1) * perPage
	end := min(start+perPage, len(rows))

	report.PrintLeaderboard(os.Stdout, rows[start:end], start)
	fmt.Fprintf(os.Stdout, "\nPage %d / %d, %d player(s) rated.\n", page, pages, len(rows))
	return nil
}
