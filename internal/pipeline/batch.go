package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mediasweep/thumbsweep/internal/model"
	"github.com/mediasweep/thumbsweep/internal/naming"
	"github.com/mediasweep/thumbsweep/internal/reconcile"
	"golang.org/x/sync/errgroup"
)

// FolderAnalyzer handles concurrent reconciliation of multiple folders.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate FolderAnalyzer rather than putting
// fan-out inside the analyze step because:
// 1. It keeps the step focused on report bookkeeping
// 2. It allows different strategies later (e.g., rate limiting on NFS)
// 3. Analysis is the only pipeline stage that is safe to parallelize:
//    it reads listings and computes decisions, never mutating the tree
type FolderAnalyzer struct {
	// rules classifies and matches the filenames of each folder.
	rules naming.Ruleset

	// concurrency is the maximum number of folders analyzed at once.
	concurrency int

	// logger is used for analysis-level logging.
	logger *slog.Logger

	// progress, when set, is called after each folder completes.
	progress func(plan model.FolderPlan, index int)

	// results stores completed folder plans by discovery index.
	// Access is synchronized via mutex.
	results []*model.FolderPlan
	mu      sync.Mutex
}

// AnalyzerOption configures a FolderAnalyzer.
type AnalyzerOption func(*FolderAnalyzer)

// WithAnalyzerLogger sets a custom logger for folder analysis.
func WithAnalyzerLogger(logger *slog.Logger) AnalyzerOption {
	return func(a *FolderAnalyzer) {
		a.logger = logger
	}
}

// WithAnalyzerConcurrency sets the maximum number of concurrently
// analyzed folders. Default is 4 if not specified.
func WithAnalyzerConcurrency(n int) AnalyzerOption {
	return func(a *FolderAnalyzer) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithAnalyzerProgress sets a callback invoked after each folder's plan
// is computed. The callback runs on the goroutine that analyzed the
// folder, so it must be safe for concurrent use.
func WithAnalyzerProgress(fn func(plan model.FolderPlan, index int)) AnalyzerOption {
	return func(a *FolderAnalyzer) {
		a.progress = fn
	}
}

// NewFolderAnalyzer creates a new FolderAnalyzer using the given ruleset.
func NewFolderAnalyzer(rules naming.Ruleset, opts ...AnalyzerOption) *FolderAnalyzer {
	a := &FolderAnalyzer{
		rules:       rules,
		concurrency: 4,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.Default()
	}

	return a
}

// AnalyzeFolders reconciles multiple folders concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each folder gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// Plans are returned in discovery order. Folders whose listing fails are
// logged and skipped; the error return indicates cancellation only.
func (a *FolderAnalyzer) AnalyzeFolders(ctx context.Context, dirs []string) ([]model.FolderPlan, error) {
	a.logger.Info("starting folder analysis",
		"total_folders", len(dirs),
		"concurrency", a.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results slice to maintain order
	a.results = make([]*model.FolderPlan, len(dirs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			names, err := listFileNames(dir)
			if err != nil {
				// Skip, never fail the run over one bad folder
				a.logger.Warn("skipping unreadable folder",
					"dir", dir,
					"error", err,
				)
				return nil
			}

			plan := reconcile.PlanFolder(a.rules, dir, names)

			a.mu.Lock()
			a.results[i] = &plan
			a.mu.Unlock()

			a.logger.Debug("folder analyzed",
				"dir", dir,
				"images", plan.Images,
				"derivatives", plan.Derivatives,
			)

			if a.progress != nil {
				a.progress(plan, i)
			}

			return nil
		})
	}

	// Wait for all folders to complete
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Compact skipped folders out while preserving order
	plans := make([]model.FolderPlan, 0, len(dirs))
	for _, p := range a.results {
		if p != nil {
			plans = append(plans, *p)
		}
	}

	elapsed := time.Since(startTime)
	a.logger.Info("folder analysis complete",
		"total_folders", len(plans),
		"elapsed", elapsed,
	)

	return plans, nil
}
