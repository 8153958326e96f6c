package main

import (
	"fmt"
	"log/slog"

	"github.com/mediasweep/thumbsweep/internal/model"
	"github.com/spf13/cobra"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean <root>",
		Short: "Delete matched derivative images from a photo tree",
		Long: `Clean walks a photo tree and deletes every derivative image whose main
file is present in the same folder.

Before analysis, filenames with separator artifacts (runs of hyphens, a
trailing underscore before the extension) are renamed to their normalized
form. Use --no-normalize to analyze names exactly as they are on disk.

Derivatives without a matching main file are never deleted: they are
retained and listed in the report for manual review.

Examples:
  # Delete matched derivatives
  thumbsweep clean ~/Pictures/export

  # Preview without touching the filesystem
  thumbsweep clean --dry-run ~/Pictures/export

  # Skip the filename normalization pre-pass
  thumbsweep clean --no-normalize ~/Pictures/export`,
		Args: cobra.ExactArgs(1),
		RunE: runCleanCmd,
	}

	addSweepFlags(cmd)

	// Clean behavior flags
	cmd.Flags().BoolP("dry-run", "n", false,
		"Plan deletions but do not touch the filesystem")
	cmd.Flags().Bool("no-normalize", false,
		"Skip the filename normalization pre-pass")

	return cmd
}

// runCleanCmd executes the clean command.
func runCleanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	cfg.DryRun, err = cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	noNormalize, err := cmd.Flags().GetBool("no-normalize")
	if err != nil {
		return err
	}
	if noNormalize {
		cfg.Normalize = false
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runSweep(ctx, cfg, model.ModeClean, logger)
}
