// Package batch drives a full ingestion run: enumerate once, then fetch and
// persist each item sequentially with politeness delays.
package batch

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"ytscribe/config"
	"ytscribe/storage"
	"ytscribe/youtube"
)

// Outcome is the terminal state of one item's processing.
type Outcome string

const (
	// OutcomeSaved means a transcript was fetched and persisted.
	OutcomeSaved Outcome = "saved"
	// OutcomeSkipped means the output file already existed; the fetcher was
	// never called.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeEmpty means no transcript was obtainable; nothing was written.
	OutcomeEmpty Outcome = "empty"
)

// ItemResult records what happened to one playlist item.
type ItemResult struct {
	// Index is the 1-based position in the enumerated sequence.
	Index int
	// VideoID and Title identify the item.
	VideoID string
	Title   string
	// Outcome is the item's terminal state.
	Outcome Outcome
	// Path is the output path (set for saved and skipped items).
	Path string
	// Reason explains an empty outcome.
	Reason youtube.UnavailableReason
}

// Report summarizes a completed run.
type Report struct {
	// RunID identifies this run in log output.
	RunID string
	// Total is the number of enumerated items.
	Total int
	// Saved, Skipped, and Empty count terminal states.
	Saved   int
	Skipped int
	Empty   int
	// Items holds per-item results in processing order.
	Items []ItemResult
}

// Runner orchestrates one ingestion run. It owns no retry logic and no
// cross-run state: resume markers are the output files themselves.
type Runner struct {
	lister  youtube.PlaylistLister
	fetcher youtube.TranscriptFetcher
	store   *storage.Store
	cfg     *config.Config
	logger  *log.Logger

	// sleep is a test seam; defaults to a context-aware time.Sleep.
	sleep func(ctx context.Context, d time.Duration) error
	// delay draws the inter-item politeness delay; test seam.
	delay func() time.Duration
}

// NewRunner creates a runner from its collaborators. cfg must be validated.
func NewRunner(lister youtube.PlaylistLister, fetcher youtube.TranscriptFetcher, store *storage.Store, cfg *config.Config, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	r := &Runner{
		lister:  lister,
		fetcher: fetcher,
		store:   store,
		cfg:     cfg,
		logger:  logger,
		sleep:   sleepContext,
	}
	r.delay = r.drawDelay
	return r
}

// Run enumerates the reference and processes every item in order.
// The only fatal condition is enumeration failure; every per-item failure is
// contained, logged, and reflected in the report.
func (r *Runner) Run(ctx context.Context, ref string) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}

	r.logger.Printf("batch: run %s: enumerating %s", report.RunID, ref)
	items, err := r.lister.List(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", ref, err)
	}

	report.Total = len(items)
	r.logger.Printf("batch: run %s: %d item(s) to process", report.RunID, len(items))

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		index := i + 1
		result := r.processItem(ctx, index, report.Total, item)
		report.Items = append(report.Items, result)
		switch result.Outcome {
		case OutcomeSaved:
			report.Saved++
		case OutcomeSkipped:
			report.Skipped++
		case OutcomeEmpty:
			report.Empty++
		}

		// Politeness delay after every item, skipped ones included.
		d := r.delay()
		if d > 0 {
			r.logger.Printf("batch: [%d/%d] sleeping %.1fs", index, report.Total, d.Seconds())
		}
		if err := r.sleep(ctx, d); err != nil {
			return report, err
		}

		// Long rest after every BatchSize-th item, except the last.
		if index%r.cfg.BatchSize == 0 && index != report.Total {
			r.logger.Printf("batch: [%d/%d] batch rest %.0fs", index, report.Total, r.cfg.BatchRest.Seconds())
			if err := r.sleep(ctx, r.cfg.BatchRest); err != nil {
				return report, err
			}
		}
	}

	r.logger.Printf("batch: run %s done: %d saved, %d skipped, %d without transcript",
		report.RunID, report.Saved, report.Skipped, report.Empty)
	return report, nil
}

// processItem moves one item through PENDING → (SKIPPED | SAVED | EMPTY).
func (r *Runner) processItem(ctx context.Context, index, total int, item youtube.PlaylistItem) ItemResult {
	result := ItemResult{Index: index, VideoID: item.ID, Title: item.Title}

	path := r.store.Path(item.Title, item.ID)
	if r.store.Exists(path) {
		r.logger.Printf("batch: [%d/%d] %s already saved, skipping", index, total, item.ID)
		result.Outcome = OutcomeSkipped
		result.Path = path
		return result
	}

	r.logger.Printf("batch: [%d/%d] fetching transcript for %s %q", index, total, item.ID, item.Title)
	fetched := r.fetcher.Fetch(ctx, item.ID, r.cfg.Languages)
	if !fetched.Available() {
		reason := fetched.Reason
		if reason == youtube.ReasonNone {
			reason = youtube.ReasonNoTranscript
		}
		r.logger.Printf("batch: [%d/%d] no transcript for %s: %s", index, total, item.ID, reason)
		result.Outcome = OutcomeEmpty
		result.Reason = reason
		return result
	}

	doc := &storage.Document{
		VideoID:  item.ID,
		Title:    item.Title,
		Segments: fetched.Segments,
	}
	if err := r.store.Save(doc, path); err != nil {
		// A failed write leaves no resume marker; the next run retries.
		r.logger.Printf("batch: [%d/%d] save failed for %s: %v", index, total, item.ID, err)
		result.Outcome = OutcomeEmpty
		result.Reason = youtube.ReasonFetchError
		return result
	}

	r.logger.Printf("batch: [%d/%d] saved %d segment(s) to %s", index, total, len(fetched.Segments), path)
	result.Outcome = OutcomeSaved
	result.Path = path
	return result
}

// drawDelay draws a uniform random delay from [MinDelay, MaxDelay].
func (r *Runner) drawDelay() time.Duration {
	span := r.cfg.MaxDelay - r.cfg.MinDelay
	if span <= 0 {
		return r.cfg.MinDelay
	}
	return r.cfg.MinDelay + rand.N(span)
}

// sleepContext sleeps for d or until the context is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
