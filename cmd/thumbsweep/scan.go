package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mediasweep/thumbsweep/internal/config"
	"github.com/mediasweep/thumbsweep/internal/database"
	"github.com/mediasweep/thumbsweep/internal/log"
	"github.com/mediasweep/thumbsweep/internal/model"
	"github.com/mediasweep/thumbsweep/internal/naming"
	"github.com/mediasweep/thumbsweep/internal/pipeline"
	"github.com/mediasweep/thumbsweep/internal/report"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <root>",
		Short: "Preview derivative cleanup for a photo tree",
		Long: `Scan walks a photo tree, classifies every image as a main file or a
generated derivative, and matches each derivative back to the main image
it was produced from.

Nothing is mutated: scan prints the per-folder delete/retain plan that a
clean run would execute, plus the derivatives that could not be matched
and therefore would be retained.

Examples:
  # Preview cleanup for a photo tree
  thumbsweep scan ~/Pictures/export

  # Output JSON report
  thumbsweep scan --json ~/Pictures/export

  # Write a Markdown report to a file
  thumbsweep scan --markdown -o report.md ~/Pictures/export

  # Use a custom configuration file
  thumbsweep scan -c myconfig.yaml ~/Pictures/export

Configuration file (.thumbsweep) example:
  extensions:
    - .jpg
    - .png
  min_width: 1600
  min_height: 1600
  concurrency: 8`,
		Args: cobra.ExactArgs(1),
		RunE: runScanCmd,
	}

	addSweepFlags(cmd)

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runSweep(ctx, cfg, model.ModeScan, logger)
}

// addSweepFlags registers the flags shared by the scan, clean, and
// relocate commands.
func addSweepFlags(cmd *cobra.Command) {
	// Classification flags
	cmd.Flags().StringSliceP("extensions", "e", naming.DefaultExtensions,
		"Image extensions recognized during analysis")
	cmd.Flags().Int("min-width", naming.DefaultMinWidth,
		"Width at or above which a size-suffixed file stays a main image")
	cmd.Flags().Int("min-height", naming.DefaultMinHeight,
		"Height at or above which a size-suffixed file stays a main image")

	// Execution flags
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Number of folders analyzed in parallel")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .thumbsweep in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-db", false,
		"Do not record this run in the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
// Precedence: built-in defaults, then the YAML config file, then every
// flag the user explicitly set on the command line.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Overlay values from the config file.
	// If the user explicitly specified a config file path, error if not found.
	// If no path specified, silently keep defaults when no file is found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.Apply(file)
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	// Explicitly set flags win over both defaults and file values.
	if cmd.Flags().Changed("extensions") {
		cfg.Extensions, err = cmd.Flags().GetStringSlice("extensions")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("min-width") {
		cfg.MinMainWidth, err = cmd.Flags().GetInt("min-width")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("min-height") {
		cfg.MinMainHeight, err = cmd.Flags().GetInt("min-height")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("no-db") {
		noDB, err := cmd.Flags().GetBool("no-db")
		if err != nil {
			return nil, err
		}
		cfg.SaveToDB = !noDB
	}

	if cmd.Flags().Changed("db-dir") {
		cfg.DBDir, err = cmd.Flags().GetString("db-dir")
		if err != nil {
			return nil, err
		}
	}

	// Report flags have no config file counterpart.
	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Get positional argument (the tree to sweep)
	cfg.Root = args[0]

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
// The handler masks home-directory prefixes in path attributes so logs
// don't leak account names.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewLogger(os.Stderr, verbose)
}

// signalContext returns a context that is cancelled when the process
// receives an interrupt or termination signal.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// runSweep executes one run of the given mode, then writes the report
// and records the run in the history database.
//
// Per-file filesystem errors are counted in the report's outcome rather
// than escalated, so an error return means the run itself could not
// proceed (the root vanished, the pipeline was cancelled).
func runSweep(ctx context.Context, cfg *config.Config, mode model.Mode, logger *slog.Logger) error {
	logger.Info("starting run",
		"mode", mode.String(),
		"root", cfg.Root,
		"concurrency", cfg.Concurrency,
		"dryRun", cfg.DryRun,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.RunDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	runReport := model.NewRunReport(cfg.Root, mode)
	runReport.Dest = cfg.Dest
	if mode == model.ModeClean {
		runReport.DryRun = cfg.DryRun
	}

	printProgress(cfg, mode)

	p := pipeline.ModePipeline(cfg, mode, pipeline.WithLogger(logger))
	if err := p.Execute(ctx, runReport); err != nil {
		return fmt.Errorf("%s failed: %w", mode, err)
	}

	fmt.Fprintf(os.Stderr, "Completed in %s\n\n", runReport.Elapsed.Round(time.Millisecond))

	if err := outputReport(cfg, runReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := saveRun(ctx, db, runReport, logger); err != nil {
		logger.Error("failed to save run", "root", cfg.Root, "error", err)
	}

	logger.Info("run complete", "summary", model.NewSummary(runReport).String())

	return nil
}

// printProgress prints a one-line description of the run about to start.
// Progress goes to stderr so piped report output stays machine-readable.
func printProgress(cfg *config.Config, mode model.Mode) {
	switch mode {
	case model.ModeClean:
		if cfg.DryRun {
			fmt.Fprintf(os.Stderr, "Cleaning %s (dry run)...\n", cfg.Root)
			return
		}
		fmt.Fprintf(os.Stderr, "Cleaning %s...\n", cfg.Root)
	case model.ModeRelocate:
		fmt.Fprintf(os.Stderr, "Relocating main images from %s to %s...\n", cfg.Root, cfg.Dest)
	default:
		fmt.Fprintf(os.Stderr, "Scanning %s...\n", cfg.Root)
	}
}

// outputReport writes the run report in the requested format.
// With --output the report goes to the named file; otherwise stdout.
func outputReport(cfg *config.Config, runReport *model.RunReport) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Create/overwrite the output file with owner-only permissions (0600)
		// Reports list paths from the user's photo library
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output (full report with version envelope)
	if cfg.JSONReport {
		writer := report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
		_, err := writer.Write(runReport)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(runReport)
		return err
	}

	// Human-readable report (default)
	writer := report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	_, err := writer.Write(runReport)
	return err
}

// saveRun persists the run report to the history database.
// If db is nil, this function is a no-op.
func saveRun(ctx context.Context, db *database.RunDB, runReport *model.RunReport, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	id, err := db.SaveRun(ctx, runReport)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	logger.Info("run saved to history", "id", id, "root", runReport.Root)
	return nil
}
