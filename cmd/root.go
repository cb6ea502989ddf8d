package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/storage"
)

var dataDir string

var rootCmd = &cobra.Command{
	Use:   "kvstat",
	Short: "STALCRAFT squad statistics tracker",
	Long: "Track squad performance from in-game scoreboard screenshots: archive them\n" +
		"from Discord, extract the numbers with the Anthropic vision API, and serve\n" +
		"rolling per-player averages as a CLI table or a Discord leaderboard.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", ".", "directory holding the JSON stores and archived images")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(dropCmd)
}

func rawPath() string {
	return filepath.Join(dataDir, storage.RawStatsFile)
}

func averagesPath() string {
	return filepath.Join(dataDir, storage.PlayerAveragesFile)
}

func imagesDir() string {
	return filepath.Join(dataDir, "images")
}
