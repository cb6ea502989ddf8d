package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/report"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show <match-id-prefix>",
	Short: "Show one stored match by id prefix",
	Long: `Print the full scoreboard of one stored match. The argument is matched as
a prefix of the stored match id ({message-id}-{filename}), so the Discord
message id alone is usually enough.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	raw, err := storage.LoadRaw(rawPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	var ids []string
	for _, id := range raw.SortedIDs() {
		if strings.HasPrefix(id, prefix) {
			ids = append(ids, id)
		}
	}
	switch {
	case len(ids) == 0:
		fmt.Fprintf(os.Stderr, "No match found with id prefix %q\n", prefix)
		return nil
	case len(ids) > 1:
		fmt.Fprintf(os.Stderr, "Prefix %q is ambiguous between:\n", prefix)
		for _, id := range ids {
			fmt.Fprintf(os.Stderr, "  %s\n", id)
		}
		return nil
	}

	report.PrintMatchBoard(os.Stdout, ids[0], raw[ids[0]])
	return nil
}
