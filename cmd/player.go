package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/aggregator"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/identity"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/report"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/storage"
)

// playerCmd is the cobra command for the match history of a single player.
var playerCmd = &cobra.Command{
	Use:   "player <nickname>",
	Short: "Show every stored game of one player",
	Long: `Print each stored scoreboard line of a player together with their
averages. The nickname is matched tolerantly, so OCR misreadings of it
("V0rtex" for "Vortex") find the same player.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlayer,
}

func runPlayer(cmd *cobra.Command, args []string) error {
	raw, err := storage.LoadRaw(rawPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if len(raw) == 0 {
		fmt.Fprintln(os.Stdout, "No match data stored yet. Run 'kvstat update' first.")
		return nil
	}

	clusters := identity.Clusters(raw.AllRecords())
	cluster := identity.Find(clusters, args[0])
	if cluster == nil {
		fmt.Fprintf(os.Stdout, "No player matching %q found.\n", args[0])
		return nil
	}

	report.PrintPlayerHistory(os.Stdout, cluster, aggregator.AveragesFor(cluster.Lines))
	return nil
}
