package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/model"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/report"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/storage"
)

var (
	exportOut string
	exportRaw bool
)

// exportDoc is the snapshot schema written by the export command. The
// provenance fields let downstream tooling tell snapshots apart without
// relying on file mtimes.
type exportDoc struct {
	GeneratedAt string           `json:"generated_at"`
	Matches     int              `json:"matches"`
	Players     []exportPlayer   `json:"players"`
	Raw         storage.RawStore `json:"raw,omitempty"`
}

// exportPlayer flattens a nickname into its averages block.
type exportPlayer struct {
	Nickname string `json:"nickname"`
	model.PlayerAverages
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the statistics as a JSON snapshot",
	Long: `Write a machine-readable snapshot of the computed player averages, ranked
by K/D, for spreadsheets or external tooling. --raw embeds the per-match
store as well so the snapshot is self-contained.

Example:
  kvstat export --out season3.json
  kvstat export --raw | jq '.players[0]'`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path (default: stdout)")
	exportCmd.Flags().BoolVar(&exportRaw, "raw", false, "embed the raw per-match store")
}

func runExport(_ *cobra.Command, _ []string) error {
	averages, err := storage.LoadAverages(averagesPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	raw, err := storage.LoadRaw(rawPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if len(averages) == 0 {
		fmt.Fprintln(os.Stderr, "note: no computed averages yet; run 'kvstat update' first")
	}

	rows := report.Rows(averages)
	report.SortByKD(rows)
	players := make([]exportPlayer, 0, len(rows))
	for _, r := range rows {
		players = append(players, exportPlayer{Nickname: r.Nickname, PlayerAverages: r.PlayerAverages})
	}

	doc := exportDoc{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Matches:     len(raw),
		Players:     players,
	}
	if exportRaw {
		doc.Raw = raw
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	if exportOut == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(exportOut, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", exportOut)
	return nil
}
