package main

import (
	"fmt"
	"log/slog"

	"github.com/mediasweep/thumbsweep/internal/model"
	"github.com/spf13/cobra"
)

// NewRelocateCmd creates the relocate command.
func NewRelocateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relocate <root> <dest>",
		Short: "Copy main images into a flat directory",
		Long: `Relocate copies every main image in the tree into a single flat
destination directory.

Derivatives stay behind. A destination name that already exists is
skipped and counted, never overwritten, so re-running after a partial
relocate is safe. Sources are copied, not moved, and the destination
must lie outside the source tree.

Examples:
  # Collect main images into one folder
  thumbsweep relocate ~/Pictures/export ~/Pictures/flat

  # JSON report of what was copied
  thumbsweep relocate --json ~/Pictures/export ~/Pictures/flat`,
		Args: cobra.ExactArgs(2),
		RunE: runRelocateCmd,
	}

	addSweepFlags(cmd)

	return cmd
}

// runRelocateCmd executes the relocate command.
func runRelocateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	cfg.Dest = args[1]

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := cfg.ValidateDest(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runSweep(ctx, cfg, model.ModeRelocate, logger)
}
