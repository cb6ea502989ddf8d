package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/aggregator"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/capture"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/config"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/ingest"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/vision"
)

var updateMinGames int

// updateCmd runs the extraction pipeline once, from the terminal instead of
// the Discord >update command.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Extract new screenshots and recompute averages",
	Long: `Read every archived screenshot that has not been processed yet, extract
the scoreboard through the vision API, store the rows and recompute the
rolling player averages. Already processed images are skipped.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().IntVar(&updateMinGames, "min-games", 0,
		"minimum games for a player to enter the rating (default: MIN_GAMES_FOR_STATS or 1)")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	minGames := updateMinGames
	if minGames < 1 {
		mg, err := config.MinGamesFromEnv()
		if err != nil {
			return err
		}
		minGames = mg
	}
	key, model, err := config.LoadExtraction()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	runner := &ingest.Runner{
		RawPath:      rawPath(),
		AveragesPath: averagesPath(),
		Library:      capture.NewLibrary(imagesDir()),
		Extractor:    vision.NewClient(key, model),
		MinGames:     minGames,
		RecentWindow: aggregator.DefaultRecentWindow,
		Logger:       slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	rep, err := runner.Run(cmd.Context(), func(msg string) {
		fmt.Fprintln(os.Stdout, msg)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\n=== Update Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  New images    : %d\n", rep.NewImages)
	fmt.Fprintf(os.Stdout, "  Extracted     : %d\n", rep.Extracted)
	fmt.Fprintf(os.Stdout, "  Stored        : %d\n", rep.Stored)
	fmt.Fprintf(os.Stdout, "  Empty reads   : %d\n", rep.Empty)
	fmt.Fprintf(os.Stdout, "  Failed        : %d\n", rep.Failed)
	if rep.Result != nil {
		fmt.Fprintf(os.Stdout, "  Rated players : %d\n", rep.Result.Players)
		fmt.Fprintf(os.Stdout, "  Total kills   : %d\n", rep.Result.TotalKills)
		fmt.Fprintf(os.Stdout, "  Total deaths  : %d\n", rep.Result.TotalDeaths)
	} else {
		fmt.Fprintln(os.Stdout, "  No raw data yet; averages were left untouched.")
	}
	return nil
}
