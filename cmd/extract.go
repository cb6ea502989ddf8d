package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/config"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/parser"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/vision"
)

var extractModel string

// extractCmd sends one local image through the vision API without touching
// the stores, for checking extraction quality.
var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Extract one screenshot and print the transcript",
	Long: `Send a single scoreboard image through the vision API and print the raw
transcript, followed by how many rows the parser would accept from it.
Nothing is stored.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractModel, "model", "",
		"vision model override (default: ANTHROPIC_MODEL or the built-in)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	key, model, err := config.LoadExtraction()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if extractModel != "" {
		model = extractModel
	}

	client := vision.NewClient(key, model)
	text, err := client.ExtractScoreboard(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("extract scoreboard: %w", err)
	}

	fmt.Fprintln(os.Stdout, text)
	fmt.Fprintf(os.Stdout, "\n%d row(s) would be accepted.\n", len(parser.Parse(text)))
	return nil
}
