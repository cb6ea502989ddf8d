package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/aggregator"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/bot"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/capture"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/config"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/ingest"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/vision"
)

// serveCmd runs the Discord bot until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Discord bot",
	Long: `Connect to Discord and serve the full workflow: admins archive scoreboard
screenshots by reacting with ✅ in the configured channels, >update runs
extraction and aggregation with progress in the log channel, and >tab posts
the interactive leaderboard.

Configuration is read from the environment, or a .env file in the working
directory: DISCORD_BOT_TOKEN, ANTHROPIC_API_KEY, ADMIN_USER_IDS,
TARGET_CHANNEL_IDS, LOG_CHANNEL_ID, and optionally ANTHROPIC_MODEL and
MIN_GAMES_FOR_STATS.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	runner := &ingest.Runner{
		RawPath:      rawPath(),
		AveragesPath: averagesPath(),
		Library:      capture.NewLibrary(imagesDir()),
		Extractor:    vision.NewClient(cfg.AnthropicKey, cfg.Model),
		MinGames:     cfg.MinGames,
		RecentWindow: aggregator.DefaultRecentWindow,
		Logger:       logger,
	}

	b, err := bot.New(cfg, runner, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting bot", "data_dir", dataDir)
	return b.Run(ctx)
}
