package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/report"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	raw, err := storage.LoadRaw(rawPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if len(raw) == 0 {
		fmt.Fprintln(os.Stdout, "No match data stored yet. Run 'kvstat update' first.")
		return nil
	}

	report.PrintMatchList(os.Stdout, raw)
	return nil
}
