// Package vision transcribes scoreboard screenshots through the Anthropic
// Messages API.
package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultModel is the vision-capable model used for extraction.
const DefaultModel = "claude-haiku-4-5-20251001"

// extractionPrompt pins the answer shape the row parser depends on: one
// space-delimited row per line, no header row, no commentary.
const extractionPrompt = `Extract the table data from this scoreboard screenshot.
Each row contains: place, player nickname, kills, deaths, assists, treasury, score.
Answer with one row per line, values separated by single spaces.
Do not include the table header, markdown formatting or any commentary.`

// Client sends screenshots to the Anthropic API and returns the raw
// transcript text.
type Client struct {
	client anthropic.Client
	model  string
}

// NewClient returns a client authenticated with the given API key. An empty
// model selects DefaultModel.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// ExtractScoreboard transcribes the scoreboard rows of one screenshot. The
// returned text is the model's raw answer; deciding which lines survive is
// the parser's job. Transport and API failures come back as errors so the
// caller can leave the image unprocessed and retry on a later run.
func (c *Client) ExtractScoreboard(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	mediaType, err := MediaType(path)
	if err != nil {
		return "", err
	}

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 2048,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewImageBlockBase64(mediaType, base64.StdEncoding.EncodeToString(data)),
				anthropic.NewTextBlock(extractionPrompt),
			),
		},
	})
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", filepath.Base(path), err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// MediaType maps an image file extension to the MIME type the API expects.
func MediaType(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png", nil
	case ".jpg", ".jpeg":
		return "image/jpeg", nil
	case ".webp":
		return "image/webp", nil
	case ".gif":
		return "image/gif", nil
	default:
		return "", fmt.Errorf("unsupported image type %q", filepath.Ext(path))
	}
}
