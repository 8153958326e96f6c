package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mediasweep/thumbsweep/internal/config"
	"github.com/mediasweep/thumbsweep/internal/database"
	"github.com/mediasweep/thumbsweep/internal/report"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit bounds the listing so a long-lived database does
// not flood the terminal. Zero means no limit.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
// This command lists runs recorded in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs from the history database",
		Long: `History lists the runs recorded by previous scan, clean, and relocate
invocations.

Every completed run stores its full report in the database. The listing
shows one line per run with its ID, date, mode, and headline counters;
use --run-id to print the complete stored report for a single run.

Examples:
  # List recent runs across all trees
  thumbsweep history

  # List runs for one tree only
  thumbsweep history --root ~/Pictures/export

  # Show the full stored report for run 12
  thumbsweep history --run-id 12

  # Same report in JSON format
  thumbsweep history --run-id 12 --json

  # List every tree with recorded runs
  thumbsweep history --list-roots`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	// Selection flags
	cmd.Flags().StringP("root", "r", "",
		"Only list runs for this root directory")
	cmd.Flags().Int64P("run-id", "i", 0,
		"Show the full stored report for a specific run ID (use the listing to see IDs)")
	cmd.Flags().IntP("limit", "l", defaultHistoryLimit,
		"Maximum number of runs to list (0 lists all)")
	cmd.Flags().BoolP("list-roots", "L", false,
		"List all root directories with recorded runs")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output in Markdown format (requires --run-id)")

	// Database location
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return errors.New("--json and --markdown are mutually exclusive")
	}

	// Open database
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Handle --list-roots flag
	listRoots, err := cmd.Flags().GetBool("list-roots")
	if err != nil {
		return err
	}
	if listRoots {
		return listRunRoots(ctx, db)
	}

	// Handle --run-id flag
	runID, err := cmd.Flags().GetInt64("run-id")
	if err != nil {
		return err
	}
	if runID > 0 {
		return showRun(ctx, db, runID, jsonOutput, markdownOutput)
	}

	if markdownOutput {
		return errors.New("markdown output requires --run-id (the listing is text or --json)")
	}

	root, err := cmd.Flags().GetString("root")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	return listRuns(ctx, db, root, limit, jsonOutput)
}

// listRunRoots lists every root directory that has recorded runs.
func listRunRoots(ctx context.Context, db *database.RunDB) error {
	roots, err := db.ListRoots(ctx)
	if err != nil {
		return fmt.Errorf("failed to list roots: %w", err)
	}

	if len(roots) == 0 {
		fmt.Println("No runs recorded in the database.")
		fmt.Println("\nUse 'thumbsweep scan <root>' to record a run.")
		return nil
	}

	fmt.Printf("Swept trees (%d):\n\n", len(roots))
	for _, root := range roots {
		fmt.Printf("  • %s\n", root)
	}
	fmt.Println("\nUse 'thumbsweep history --root <root>' to list runs for one tree.")

	return nil
}

// listRuns prints one line per recorded run, newest first.
func listRuns(ctx context.Context, db *database.RunDB, root string, limit int, jsonOutput bool) error {
	runs, err := db.ListRuns(ctx, root, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	if len(runs) == 0 {
		if root != "" {
			fmt.Printf("No runs recorded for %s\n", root)
		} else {
			fmt.Println("No runs recorded in the database.")
		}
		fmt.Println("\nUse 'thumbsweep scan <root>' to record a run.")
		return nil
	}

	if root != "" {
		fmt.Printf("Run history for %s (%d runs):\n\n", root, len(runs))
		fmt.Printf("  %-6s  %-20s  %-9s  %s\n", "ID", "Date", "Mode", "Summary")
		fmt.Println("  " + strings.Repeat("-", 70))
		for _, meta := range runs {
			fmt.Printf("  %-6d  %-20s  %-9s  %s\n",
				meta.ID,
				meta.StartedAt.Format("2006-01-02 15:04:05"),
				meta.Mode,
				formatRunSummary(meta),
			)
		}
	} else {
		fmt.Printf("Run history (%d runs):\n\n", len(runs))
		fmt.Printf("  %-6s  %-20s  %-9s  %-28s  %s\n", "ID", "Date", "Mode", "Root", "Summary")
		fmt.Println("  " + strings.Repeat("-", 82))
		for _, meta := range runs {
			fmt.Printf("  %-6d  %-20s  %-9s  %-28s  %s\n",
				meta.ID,
				meta.StartedAt.Format("2006-01-02 15:04:05"),
				meta.Mode,
				meta.Root,
				formatRunSummary(meta),
			)
		}
	}

	fmt.Println("\nUse 'thumbsweep history --run-id <id>' to show one run's full report.")

	return nil
}

// formatRunSummary renders the headline counters for one history row.
// Zero-valued outcome counters are omitted to keep rows short.
func formatRunSummary(meta database.RunMetadata) string {
	parts := []string{
		fmt.Sprintf("%d folders", meta.Folders),
		fmt.Sprintf("%d images", meta.Images),
		fmt.Sprintf("%d derivatives", meta.Derivatives),
	}
	if meta.Unresolved > 0 {
		parts = append(parts, fmt.Sprintf("%d unresolved", meta.Unresolved))
	}
	if meta.Deleted > 0 {
		parts = append(parts, fmt.Sprintf("%d deleted", meta.Deleted))
	}
	if meta.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", meta.Failed))
	}
	return strings.Join(parts, ", ")
}

// showRun prints the full stored report for one run.
func showRun(ctx context.Context, db *database.RunDB, runID int64, jsonOutput, markdownOutput bool) error {
	runReport, err := db.GetRun(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to get run %d: %w", runID, err)
	}
	if runReport == nil {
		return fmt.Errorf("run %d not found (use 'thumbsweep history' to list run IDs)", runID)
	}

	if jsonOutput {
		writer := report.NewFullJSONWriter(os.Stdout, getVersion(), report.WithPrettyPrint())
		_, err := writer.Write(runReport)
		return err
	}

	if markdownOutput {
		writer := report.NewMarkdownWriter(os.Stdout)
		_, err := writer.Write(runReport)
		return err
	}

	writer := report.NewSimpleWriter(os.Stdout)
	_, err = writer.Write(runReport)
	return err
}
