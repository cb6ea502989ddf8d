// Package config loads the bot configuration from the environment,
// optionally seeded from a .env file in the working directory. Validation
// is eager: a missing or malformed value aborts startup before any
// component runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the full bot configuration.
type Config struct {
	// BotToken authenticates the Discord gateway session.
	BotToken string
	// AnthropicKey authenticates scoreboard extraction calls.
	AnthropicKey string
	// Model optionally overrides the default extraction model.
	Model string
	// AdminIDs are the user ids allowed to capture screenshots and run
	// privileged commands.
	AdminIDs []string
	// LogChannelID receives update-run progress and results.
	LogChannelID string
	// TargetChannels are the channels where ✅ reactions capture images.
	TargetChannels []string
	// MinGames is the eligibility threshold for the leaderboard.
	MinGames int
}

// Load reads and validates the full bot configuration. Environment
// variables already set take precedence over the .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:     os.Getenv("DISCORD_BOT_TOKEN"),
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		Model:        os.Getenv("ANTHROPIC_MODEL"),
	}
	if cfg.BotToken == "" {
		return nil, errors.New("DISCORD_BOT_TOKEN is not set")
	}
	if cfg.AnthropicKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY is not set")
	}

	var err error
	if cfg.AdminIDs, err = splitIDs(os.Getenv("ADMIN_USER_IDS")); err != nil {
		return nil, fmt.Errorf("ADMIN_USER_IDS: %w", err)
	}
	if cfg.TargetChannels, err = splitIDs(os.Getenv("TARGET_CHANNEL_IDS")); err != nil {
		return nil, fmt.Errorf("TARGET_CHANNEL_IDS: %w", err)
	}

	logChannel := strings.TrimSpace(os.Getenv("LOG_CHANNEL_ID"))
	if logChannel == "" {
		return nil, errors.New("LOG_CHANNEL_ID is not set")
	}
	if _, err := strconv.ParseUint(logChannel, 10, 64); err != nil {
		return nil, fmt.Errorf("LOG_CHANNEL_ID: invalid id %q", logChannel)
	}
	cfg.LogChannelID = logChannel

	if cfg.MinGames, err = MinGamesFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadExtraction reads just what the CLI pipeline needs: the Anthropic key
// (required) and the optional model override.
func LoadExtraction() (key, model string, err error) {
	_ = godotenv.Load()

	key = os.Getenv("ANTHROPIC_API_KEY")
	if key == "" {
		return "", "", errors.New("ANTHROPIC_API_KEY is not set")
	}
	return key, os.Getenv("ANTHROPIC_MODEL"), nil
}

// MinGamesFromEnv reads MIN_GAMES_FOR_STATS, defaulting to 1 when unset.
func MinGamesFromEnv() (int, error) {
	raw := strings.TrimSpace(os.Getenv("MIN_GAMES_FOR_STATS"))
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("MIN_GAMES_FOR_STATS: invalid number %q", raw)
	}
	if n < 1 {
		return 0, fmt.Errorf("MIN_GAMES_FOR_STATS: must be at least 1, got %d", n)
	}
	return n, nil
}

// splitIDs parses a comma-separated list of numeric snowflake ids.
func splitIDs(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("not set")
	}
	var ids []string
	for _, part := range strings.Split(s, ",") {
		id := strings.TrimSpace(part)
		if _, err := strconv.ParseUint(id, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid id %q", id)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
