package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mediasweep/thumbsweep/internal/config"
	"github.com/mediasweep/thumbsweep/internal/model"
	"github.com/mediasweep/thumbsweep/internal/naming"
)

// DiscoverStep walks the run root and records every folder to process.
// All later steps operate on the discovery list, so this step always
// runs first.
type DiscoverStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// DiscoverStepOption configures a DiscoverStep.
type DiscoverStepOption func(*DiscoverStep)

// WithDiscoverLogger sets a custom logger for the discover step.
func WithDiscoverLogger(logger *slog.Logger) DiscoverStepOption {
	return func(s *DiscoverStep) {
		s.logger = logger
	}
}

// NewDiscoverStep creates a new folder discovery step.
func NewDiscoverStep(opts ...DiscoverStepOption) *DiscoverStep {
	s := &DiscoverStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *DiscoverStep) Name() string {
	return "discover"
}

// Do executes the discover step.
func (s *DiscoverStep) Do(ctx context.Context, report *model.RunReport) error {
	dirs, err := DiscoverFolders(ctx, report.Root, s.logger)
	if err != nil {
		return fmt.Errorf("walk %s: %w", report.Root, err)
	}

	report.FolderDirs = dirs
	s.logger.Info("discovery complete",
		"root", report.Root,
		"folders", len(dirs),
	)
	return nil
}

// NormalizeStep repairs separator artifacts in filenames before
// classification: hyphen runs collapse and stray `_.` sequences drop.
// Fixed names produce cleaner base identities and better matches.
//
// Design decision: Normalization runs sequentially and before the
// concurrent analysis fan-out because it renames files; the analysis
// workers must see a settled tree.
type NormalizeStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// NormalizeStepOption configures a NormalizeStep.
type NormalizeStepOption func(*NormalizeStep)

// WithNormalizeLogger sets a custom logger for the normalize step.
func WithNormalizeLogger(logger *slog.Logger) NormalizeStepOption {
	return func(s *NormalizeStep) {
		s.logger = logger
	}
}

// NewNormalizeStep creates a new filename normalization step.
func NewNormalizeStep(opts ...NormalizeStepOption) *NormalizeStep {
	s := &NormalizeStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *NormalizeStep) Name() string {
	return "normalize"
}

// Do executes the normalize step.
func (s *NormalizeStep) Do(ctx context.Context, report *model.RunReport) error {
	for _, dir := range report.FolderDirs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		names, err := listFileNames(dir)
		if err != nil {
			s.logger.Warn("skipping unreadable folder",
				"dir", dir,
				"error", err,
			)
			continue
		}

		for _, name := range names {
			fixed := naming.NormalizeFilename(name)
			if fixed == name {
				continue
			}

			target := filepath.Join(dir, fixed)
			if _, err := os.Lstat(target); err == nil {
				// A file with the repaired name already exists; the
				// original name flows into classification unchanged.
				s.logger.Warn("skipping rename, target exists",
					"dir", dir,
					"from", name,
					"to", fixed,
				)
				continue
			}

			if err := os.Rename(filepath.Join(dir, name), target); err != nil {
				s.logger.Warn("rename failed",
					"dir", dir,
					"from", name,
					"to", fixed,
					"error", err,
				)
				report.Outcome.Failed++
				continue
			}

			s.logger.Debug("renamed",
				"dir", dir,
				"from", name,
				"to", fixed,
			)
			report.Outcome.Renamed++
		}
	}

	if report.Outcome.Renamed > 0 {
		s.logger.Info("normalization complete",
			"renamed", report.Outcome.Renamed,
		)
	}
	return nil
}

// AnalyzeStep computes the folder plans and folds them into the report.
// This is the only concurrent stage; it reads the tree without mutating it.
type AnalyzeStep struct {
	// rules classifies and matches the filenames of each folder.
	rules naming.Ruleset

	// concurrency is the maximum number of folders analyzed at once.
	concurrency int

	// logger for structured logging.
	logger *slog.Logger
}

// AnalyzeStepOption configures an AnalyzeStep.
type AnalyzeStepOption func(*AnalyzeStep)

// WithAnalyzeConcurrency sets the analysis fan-out width.
func WithAnalyzeConcurrency(n int) AnalyzeStepOption {
	return func(s *AnalyzeStep) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithAnalyzeLogger sets a custom logger for the analyze step.
func WithAnalyzeLogger(logger *slog.Logger) AnalyzeStepOption {
	return func(s *AnalyzeStep) {
		s.logger = logger
	}
}

// NewAnalyzeStep creates a new analysis step using the given ruleset.
func NewAnalyzeStep(rules naming.Ruleset, opts ...AnalyzeStepOption) *AnalyzeStep {
	s := &AnalyzeStep{
		rules:       rules,
		concurrency: config.DefaultConcurrency,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do executes the analyze step.
func (s *AnalyzeStep) Do(ctx context.Context, report *model.RunReport) error {
	analyzer := NewFolderAnalyzer(s.rules,
		WithAnalyzerConcurrency(s.concurrency),
		WithAnalyzerLogger(s.logger),
	)

	plans, err := analyzer.AnalyzeFolders(ctx, report.FolderDirs)
	if err != nil {
		return err
	}

	for _, plan := range plans {
		report.AddFolderPlan(plan)
	}
	return nil
}

// ApplyStep deletes the derivatives the analysis marked for deletion.
// In dry-run mode it only logs what a real run would remove.
//
// Design decision: Apply is a separate step from analyze so that preview
// and execution share one decision path; the dry-run flag switches off
// the os.Remove call and nothing else.
type ApplyStep struct {
	// dryRun disables filesystem mutation when true.
	dryRun bool

	// logger for structured logging.
	logger *slog.Logger
}

// ApplyStepOption configures an ApplyStep.
type ApplyStepOption func(*ApplyStep)

// WithApplyLogger sets a custom logger for the apply step.
func WithApplyLogger(logger *slog.Logger) ApplyStepOption {
	return func(s *ApplyStep) {
		s.logger = logger
	}
}

// NewApplyStep creates a new deletion step.
func NewApplyStep(dryRun bool, opts ...ApplyStepOption) *ApplyStep {
	s := &ApplyStep{
		dryRun: dryRun,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ApplyStep) Name() string {
	return "apply"
}

// Do executes the apply step.
func (s *ApplyStep) Do(ctx context.Context, report *model.RunReport) error {
	for _, plan := range report.Folders {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for _, decision := range plan.Decisions {
			if decision.Action == model.ActionRetain {
				s.logger.Warn("no main file found, keeping derivative",
					"dir", plan.Dir,
					"file", decision.Name,
				)
				continue
			}

			path := filepath.Join(plan.Dir, decision.Name)
			if s.dryRun {
				s.logger.Info("would delete",
					"path", path,
					"matches", decision.Matches,
				)
				continue
			}

			if err := os.Remove(path); err != nil {
				s.logger.Warn("delete failed",
					"path", path,
					"error", err,
				)
				report.Outcome.Failed++
				continue
			}

			s.logger.Debug("deleted",
				"path", path,
				"matches", decision.Matches,
			)
			report.Outcome.Deleted++
		}
	}

	s.logger.Info("apply complete",
		"deleted", report.Outcome.Deleted,
		"failed", report.Outcome.Failed,
		"dry_run", s.dryRun,
	)
	return nil
}

// RelocateStep copies every main image into a single flat destination
// directory. Derivatives and non-image files stay behind; the source
// tree is never modified.
type RelocateStep struct {
	// rules classifies filenames so only main images are copied.
	rules naming.Ruleset

	// dest is the flat destination directory.
	dest string

	// logger for structured logging.
	logger *slog.Logger
}

// RelocateStepOption configures a RelocateStep.
type RelocateStepOption func(*RelocateStep)

// WithRelocateLogger sets a custom logger for the relocate step.
func WithRelocateLogger(logger *slog.Logger) RelocateStepOption {
	return func(s *RelocateStep) {
		s.logger = logger
	}
}

// NewRelocateStep creates a new relocation step copying into dest.
func NewRelocateStep(rules naming.Ruleset, dest string, opts ...RelocateStepOption) *RelocateStep {
	s := &RelocateStep{
		rules:  rules,
		dest:   dest,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *RelocateStep) Name() string {
	return "relocate"
}

// Do executes the relocate step.
func (s *RelocateStep) Do(ctx context.Context, report *model.RunReport) error {
	if err := os.MkdirAll(s.dest, 0750); err != nil {
		return fmt.Errorf("create destination %s: %w", s.dest, err)
	}

	for _, dir := range report.FolderDirs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		names, err := listFileNames(dir)
		if err != nil {
			s.logger.Warn("skipping unreadable folder",
				"dir", dir,
				"error", err,
			)
			continue
		}

		for _, name := range names {
			if !s.rules.IsImage(name) || s.rules.IsDerivative(name) {
				continue
			}

			src := filepath.Join(dir, name)
			dst := filepath.Join(s.dest, name)

			switch err := copyFile(src, dst); {
			case errors.Is(err, fs.ErrExist):
				// Flat destination: first occurrence of a name wins.
				s.logger.Debug("skipping copy, name already taken",
					"src", src,
					"dst", dst,
				)
				report.Outcome.CopySkipped++
			case err != nil:
				s.logger.Warn("copy failed",
					"src", src,
					"dst", dst,
					"error", err,
				)
				report.Outcome.Failed++
			default:
				s.logger.Debug("copied",
					"src", src,
					"dst", dst,
				)
				report.Outcome.Copied++
			}
		}
	}

	s.logger.Info("relocate complete",
		"copied", report.Outcome.Copied,
		"skipped", report.Outcome.CopySkipped,
		"failed", report.Outcome.Failed,
	)
	return nil
}

// copyFile copies src to dst preserving the source's permission bits.
// Creation is exclusive: an existing dst returns an fs.ErrExist error
// without touching the file.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // Read-only descriptor

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close() //nolint:errcheck,gosec // Already failing
		return err
	}
	return out.Close()
}

// ModePipeline assembles the step sequence for one run mode:
//
//   - scan:     discover -> analyze
//   - clean:    discover -> normalize -> analyze -> apply
//   - relocate: discover -> analyze -> relocate
//
// Clean drops the normalize step when normalization is disabled or the
// run is a dry run (normalization renames files, which a dry run must
// not do), and apply inherits the dry-run flag.
//
// Design decision: We provide a mode builder because:
// 1. Every command wants the same ordering for its mode
// 2. It reduces boilerplate in the CLI
// 3. The dry-run and normalize interactions live in one place
func ModePipeline(cfg *config.Config, mode model.Mode, opts ...Option) *Pipeline {
	p := New(opts...)
	rules := cfg.Ruleset()

	p.AddStep(NewDiscoverStep(WithDiscoverLogger(p.logger)))

	if mode == model.ModeClean && cfg.Normalize && !cfg.DryRun {
		p.AddStep(NewNormalizeStep(WithNormalizeLogger(p.logger)))
	}

	p.AddStep(NewAnalyzeStep(rules,
		WithAnalyzeConcurrency(cfg.Concurrency),
		WithAnalyzeLogger(p.logger),
	))

	switch mode {
	case model.ModeClean:
		p.AddStep(NewApplyStep(cfg.DryRun, WithApplyLogger(p.logger)))
	case model.ModeRelocate:
		p.AddStep(NewRelocateStep(rules, cfg.Dest, WithRelocateLogger(p.logger)))
	case model.ModeScan:
		// Analysis alone: scan never mutates.
	}

	return p
}
