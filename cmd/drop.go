package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dropForce  bool
	dropImages bool
)

// dropCmd deletes the JSON stores, and optionally the archived images.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the stored statistics",
	Long: `Permanently delete the raw match store and the computed averages. Archived
screenshots are kept unless --images is given, so a later update can rebuild
everything from them.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
	dropCmd.Flags().BoolVar(&dropImages, "images", false, "also delete the archived screenshots")
}

func runDrop(cmd *cobra.Command, args []string) error {
	targets := []string{rawPath(), averagesPath()}

	if !dropForce {
		fmt.Fprintln(os.Stderr, "This will permanently delete:")
		for _, p := range targets {
			fmt.Fprintf(os.Stderr, "  %s\n", p)
		}
		if dropImages {
			fmt.Fprintf(os.Stderr, "  %s (all archived screenshots)\n", imagesDir())
		}
		fmt.Fprintln(os.Stderr, "Re-run with --force to confirm.")
		return nil
	}

	for _, p := range targets {
		if err := os.Remove(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("remove %s: %w", p, err)
		}
		fmt.Fprintf(os.Stdout, "Deleted: %s\n", p)
	}
	if dropImages {
		if err := os.RemoveAll(imagesDir()); err != nil {
			return fmt.Errorf("remove images: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Deleted: %s\n", imagesDir())
	}
	return nil
}
