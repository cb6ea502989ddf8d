// Package ingest drives the update pipeline: discover unprocessed captures,
// transcribe them, parse the transcripts, merge the rows into the raw store
// and recompute the leaderboard averages.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/aggregator"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/capture"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/parser"
	"github.com/Redex2xp/stalcraft-tab-kv-stat/internal/storage"
)

// Extractor turns a screenshot on disk into a scoreboard transcript.
// vision.Client is the production implementation.
type Extractor interface {
	ExtractScoreboard(ctx context.Context, path string) (string, error)
}

// Progress receives human-readable milestones during a run. The bot
// forwards them to its log channel; the CLI prints them.
type Progress func(msg string)

// Runner holds the collaborators of the update pipeline.
type Runner struct {
	RawPath      string
	AveragesPath string
	Library      *capture.Library
	Extractor    Extractor
	MinGames     int
	RecentWindow int
	Logger       *slog.Logger
}

// Report summarises one update run.
type Report struct {
	// NewImages counts captures with no raw-store entry at run start.
	NewImages int
	// Extracted counts successful transcriptions, including those that
	// parsed to zero rows.
	Extracted int
	// Stored counts batches merged into the raw store (at least one row).
	Stored int
	// Empty counts transcriptions that parsed to zero rows; their images
	// stay unkeyed and are retried on the next run.
	Empty int
	// Failed counts extraction errors; those images are also retried.
	Failed int
	// Result is the fresh aggregation, nil when the store came out empty.
	Result *aggregator.Result
}

// Run executes one full update pass. The raw store is flushed once, after
// the extraction loop: matches stored by earlier runs stay processed, while
// a crash mid-batch re-extracts the whole batch next time. There is no
// cross-process locking; updates are operator-triggered one at a time.
func (r *Runner) Run(ctx context.Context, progress Progress) (*Report, error) {
	if progress == nil {
		progress = func(string) {}
	}
	log := r.Logger
	if log == nil {
		log = slog.Default()
	}

	raw, err := storage.LoadRaw(r.RawPath)
	if err != nil {
		// Corrupt store: the run continues on empty data, but the
		// operator hears about it, unlike a cold start.
		log.Warn("raw store unreadable", "path", r.RawPath, "err", err)
		progress(fmt.Sprintf("Warning: %v. Continuing with an empty store.", err))
	}

	names, err := r.Library.List()
	if err != nil {
		return nil, fmt.Errorf("scan images: %w", err)
	}

	report := &Report{}
	var fresh []string
	for _, name := range names {
		if _, known := raw[name]; known {
			continue
		}
		fresh = append(fresh, name)
	}
	report.NewImages = len(fresh)

	if len(fresh) == 0 {
		progress("No new images to process.")
	} else {
		progress(fmt.Sprintf("Found %d new image(s) to process.", len(fresh)))
		for _, name := range fresh {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			text, err := r.Extractor.ExtractScoreboard(ctx, filepath.Join(r.Library.Dir(), name))
			if err != nil {
				report.Failed++
				log.Warn("extraction failed", "image", name, "err", err)
				continue
			}
			report.Extracted++

			records := parser.Parse(text)
			if len(records) == 0 {
				report.Empty++
				log.Warn("no scoreboard rows recognised", "image", name)
				continue
			}
			raw[name] = records
			report.Stored++
			log.Info("image processed", "image", name, "rows", len(records))
		}

		if report.Extracted > 0 {
			if err := storage.SaveRaw(r.RawPath, raw); err != nil {
				return nil, fmt.Errorf("flush raw store: %w", err)
			}
			progress(fmt.Sprintf("Processed %d of %d new image(s); %d stored.", report.Extracted, report.NewImages, report.Stored))
		}
	}

	progress("Recomputing player averages...")
	result, err := aggregator.Aggregate(raw, r.MinGames, r.RecentWindow)
	if errors.Is(err, aggregator.ErrNoData) {
		// Nothing to compute; any previously saved averages stay as-is.
		log.Warn("aggregation skipped", "err", err)
		return report, nil
	}
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	if err := storage.SaveAverages(r.AveragesPath, result.Averages); err != nil {
		return nil, fmt.Errorf("save averages: %w", err)
	}
	log.Info("averages recomputed", "players", result.Players, "matches", len(raw))

	report.Result = result
	return report, nil
}
