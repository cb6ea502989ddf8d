package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/aggregator"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/identity"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/storage"
)

// summaryCmd is the cobra command for displaying a high-level store overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the store",
	Long: `Display aggregate statistics about all stored matches: match and row
counts, how many distinct players the clustering found, who is still
active, and the all-time kill and death totals.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	raw, err := storage.LoadRaw(rawPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if len(raw) == 0 {
		fmt.Fprintln(os.Stdout, "No match data stored yet. Run 'kvstat update' first.")
		return nil
	}

	records := raw.AllRecords()
	nicknames := make(map[string]struct{})
	var kills, deaths int
	for _, r := range records {
		nicknames[r.Nickname] = struct{}{}
		kills += r.Kills
		deaths += r.Deaths
	}

	clusters := identity.Clusters(records)
	active := identity.Active(raw, aggregator.DefaultRecentWindow)
	activePlayers := 0
	for i := range clusters {
		if clusters[i].IsActive(active) {
			activePlayers++
		}
	}

	fmt.Fprintf(os.Stdout, "\n=== Store Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Matches stored  : %d\n", len(raw))
	fmt.Fprintf(os.Stdout, "  Scoreboard rows : %d\n", len(records))
	fmt.Fprintf(os.Stdout, "  Raw nicknames   : %d\n", len(nicknames))
	fmt.Fprintf(os.Stdout, "  Players found   : %d\n", len(clusters))
	fmt.Fprintf(os.Stdout, "  Active players  : %d (seen in the %d most recent matches)\n",
		activePlayers, aggregator.DefaultRecentWindow)
	fmt.Fprintf(os.Stdout, "  Total kills     : %d\n", kills)
	fmt.Fprintf(os.Stdout, "  Total deaths    : %d\n", deaths)

	// Most played, ties broken by name so the output is stable.
	sort.Slice(clusters, func(i, j int) bool {
		if len(clusters[i].Lines) != len(clusters[j].Lines) {
			return len(clusters[i].Lines) > len(clusters[j].Lines)
		}
		return clusters[i].Nickname < clusters[j].Nickname
	})
	if len(clusters) > 10 {
		clusters = clusters[:10]
	}

	fmt.Fprintf(os.Stdout, "\n--- Most Played ---\n\n")
	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("PLAYER", "GAMES", "KILLS", "DEATHS")
	for i := range clusters {
		var k, d int
		for _, l := range clusters[i].Lines {
			k += l.Kills
			d += l.Deaths
		}
		table.Append(
			clusters[i].Nickname,
			fmt.Sprintf("%d", len(clusters[i].Lines)),
			fmt.Sprintf("%d", k),
			fmt.Sprintf("%d", d),
		)
	}
	table.Render()

	return nil
}
