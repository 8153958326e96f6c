package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mediasweep/thumbsweep/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no content are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	var sb strings.Builder

	// Header
	w.writeHeader(&sb, report)

	// Totals
	w.writeTotals(&sb, report)

	// Per-folder decisions
	w.writeFolders(&sb, report)

	// Unresolved derivatives
	w.writeUnresolved(&sb, report)

	// Outcome
	w.writeOutcome(&sb, report)

	// Footer
	w.writeFooter(&sb)

	// Write to output
	return w.output.Write([]byte(sb.String()))
}

// WriteSummary outputs the run summary as a compact block.
func (w *SimpleWriter) WriteSummary(summary *model.Summary) (int, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Root:      %s\n", summary.Root))
	sb.WriteString(fmt.Sprintf("Mode:      %s\n", modeText(summary.Mode, summary.DryRun)))
	sb.WriteString(fmt.Sprintf("Run Date:  %s\n", summary.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Result:    %s\n", summary.String()))

	return w.output.Write([]byte(sb.String()))
}

// modeText renders a mode with its dry-run qualifier.
func modeText(mode model.Mode, dryRun bool) string {
	if dryRun {
		return mode.String() + " (dry run)"
	}
	return mode.String()
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         THUMBSWEEP REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Root:      %s\n", report.Root))
	if report.Dest != "" {
		sb.WriteString(fmt.Sprintf("Dest:      %s\n", report.Dest))
	}
	sb.WriteString(fmt.Sprintf("Mode:      %s\n", modeText(report.Mode, report.DryRun)))
	sb.WriteString(fmt.Sprintf("Run Date:  %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Elapsed:   %s\n", report.Elapsed))

	sb.WriteString("\n")
}

// writeTotals writes the classification totals section.
func (w *SimpleWriter) writeTotals(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("TOTALS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Folders:          %d\n", report.Totals.Folders))
	sb.WriteString(fmt.Sprintf("  Files:            %d\n", report.Totals.Files))
	sb.WriteString(fmt.Sprintf("  Images:           %d\n", report.Totals.Images))
	sb.WriteString(fmt.Sprintf("  Main files:       %d\n", report.Totals.Mains))
	sb.WriteString(fmt.Sprintf("  Derivatives:      %d\n", report.Totals.Derivatives))
	sb.WriteString(fmt.Sprintf("  Planned deletes:  %d\n", report.Totals.PlannedDeletes))
	sb.WriteString(fmt.Sprintf("  Unresolved:       %d\n", report.Totals.Unresolved))
	sb.WriteString("\n")
}

// writeFolders writes one section per folder that had derivatives,
// listing each decision with its matches.
func (w *SimpleWriter) writeFolders(sb *strings.Builder, report *model.RunReport) {
	if len(report.Folders) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FOLDER DECISIONS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Folders) == 0 {
		sb.WriteString("  No derivatives found\n\n")
		return
	}

	for _, plan := range report.Folders {
		sb.WriteString(fmt.Sprintf("[%s]\n", plan.Dir))
		for _, d := range plan.Decisions {
			w.writeDecision(sb, d)
		}
		sb.WriteString("\n")
	}
}

// writeDecision writes one derivative's decision line.
func (w *SimpleWriter) writeDecision(sb *strings.Builder, d model.FileDecision) {
	switch d.Action {
	case model.ActionDelete:
		sb.WriteString(fmt.Sprintf("  * %s -> delete (matches: %s)\n",
			d.Name, strings.Join(d.Matches, ", ")))
	case model.ActionRetain:
		sb.WriteString(fmt.Sprintf("  * %s -> retain (no main file)\n", d.Name))
	}
	if w.verbose {
		sb.WriteString(fmt.Sprintf("    Base identity: %s\n", d.BaseIdentity))
	}
}

// writeUnresolved writes the review list of derivatives kept because no
// main file was found.
func (w *SimpleWriter) writeUnresolved(sb *strings.Builder, report *model.RunReport) {
	unresolved := report.UnresolvedDecisions()
	if len(unresolved) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("UNRESOLVED DERIVATIVES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(unresolved) == 0 {
		sb.WriteString("  None\n")
	} else {
		for _, u := range unresolved {
			sb.WriteString(fmt.Sprintf("  [!] %s\n", filepath.Join(u.Dir, u.Name)))
		}
	}
	sb.WriteString("\n")
}

// writeOutcome writes the mutation counters. Scan runs omit the section
// unless empty sections were requested.
func (w *SimpleWriter) writeOutcome(sb *strings.Builder, report *model.RunReport) {
	if report.Mode == model.ModeScan && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("OUTCOME\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Renamed:       %d\n", report.Outcome.Renamed))
	sb.WriteString(fmt.Sprintf("  Deleted:       %d\n", report.Outcome.Deleted))
	sb.WriteString(fmt.Sprintf("  Copied:        %d\n", report.Outcome.Copied))
	sb.WriteString(fmt.Sprintf("  Copy skipped:  %d\n", report.Outcome.CopySkipped))
	sb.WriteString(fmt.Sprintf("  Failed:        %d\n", report.Outcome.Failed))
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by thumbsweep\n")
	sb.WriteString("https://github.com/mediasweep/thumbsweep\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
