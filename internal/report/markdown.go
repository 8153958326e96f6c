package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/mediasweep/thumbsweep/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	// Header
	w.writeHeader(md, report)

	// Totals
	w.writeTotals(md, report)

	// Per-folder decisions
	w.writeFolders(md, report)

	// Unresolved derivatives
	w.writeUnresolved(md, report)

	// Outcome
	w.writeOutcome(md, report)

	// Footer
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteSummary outputs the run summary in Markdown format.
func (w *MarkdownWriter) WriteSummary(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Run Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Root", "`" + summary.Root + "`"},
			{"Mode", modeText(summary.Mode, summary.DryRun)},
			{"Run Date", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Folders", strconv.Itoa(summary.Folders)},
			{"Images", strconv.Itoa(summary.Images)},
			{"Main files", strconv.Itoa(summary.Mains)},
			{"Derivatives", strconv.Itoa(summary.Derivatives)},
			{"Planned deletes", strconv.Itoa(summary.PlannedDeletes)},
			{"Unresolved", strconv.Itoa(summary.Unresolved)},
		},
	})
	md.PlainText("")

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RunReport) {
	md.H1("Thumbsweep Report")
	md.PlainText("")

	rows := [][]string{
		{"Root", "`" + report.Root + "`"},
	}
	if report.Dest != "" {
		rows = append(rows, []string{"Destination", "`" + report.Dest + "`"})
	}
	rows = append(rows,
		[]string{"Mode", modeText(report.Mode, report.DryRun)},
		[]string{"Run Date", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
		[]string{"Elapsed", report.Elapsed.String()},
	)

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeTotals writes the classification totals section.
func (w *MarkdownWriter) writeTotals(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Totals")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Count", "Value"},
		Rows: [][]string{
			{"Folders", strconv.Itoa(report.Totals.Folders)},
			{"Files", strconv.Itoa(report.Totals.Files)},
			{"Images", strconv.Itoa(report.Totals.Images)},
			{"Main files", strconv.Itoa(report.Totals.Mains)},
			{"Derivatives", strconv.Itoa(report.Totals.Derivatives)},
			{"Planned deletes", strconv.Itoa(report.Totals.PlannedDeletes)},
			{"Unresolved", strconv.Itoa(report.Totals.Unresolved)},
		},
	})
	md.PlainText("")

	// Add pie chart if the tree had any images
	if report.Totals.Images > 0 {
		w.writePieChart(md, report)
	}

	// Add alert based on run results
	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart of the image classification.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.RunReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Image Classification"),
		piechart.WithShowData(true),
	)

	if report.Totals.Mains > 0 {
		chart.LabelAndIntValue("Main files", uint64(report.Totals.Mains))
	}
	if report.Totals.PlannedDeletes > 0 {
		chart.LabelAndIntValue("Planned deletes", uint64(report.Totals.PlannedDeletes))
	}
	if report.Totals.Unresolved > 0 {
		chart.LabelAndIntValue("Unresolved", uint64(report.Totals.Unresolved))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on run results.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.RunReport) {
	switch {
	case report.Outcome.Failed > 0:
		md.Cautionf(
			"%d file operation(s) failed. Check the log output for details.",
			report.Outcome.Failed,
		)
	case report.Totals.Unresolved > 0:
		md.Warningf(
			"%d derivative(s) have no matching main file and were kept for manual review.",
			report.Totals.Unresolved,
		)
	case report.Totals.Derivatives > 0:
		md.Tip("Every derivative matched a main file.")
	default:
		md.Note("No derivatives found in this tree.")
	}
	md.PlainText("")
}

// writeFolders writes one section per folder that had derivatives,
// listing each decision with its matches.
func (w *MarkdownWriter) writeFolders(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Folder Decisions")
	md.PlainText("")

	if len(report.Folders) == 0 {
		md.PlainText("No derivatives found.")
		md.PlainText("")
		return
	}

	for _, plan := range report.Folders {
		md.H3("`" + plan.Dir + "`")
		md.PlainText("")
		w.writeDecisionTable(md, plan.Decisions)
	}
}

// writeDecisionTable writes a table of decisions for one folder.
func (w *MarkdownWriter) writeDecisionTable(md *markdown.Markdown, decisions []model.FileDecision) {
	rows := make([][]string, len(decisions))
	for i, d := range decisions {
		matches := strings.Join(d.Matches, ", ")
		if matches == "" {
			matches = "-"
		}

		rows[i] = []string{
			"`" + d.Name + "`",
			d.Action.String(),
			truncateString(matches, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"File", "Action", "Matches"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeUnresolved writes the review list of derivatives kept because no
// main file was found.
func (w *MarkdownWriter) writeUnresolved(md *markdown.Markdown, report *model.RunReport) {
	unresolved := report.UnresolvedDecisions()
	if len(unresolved) == 0 {
		return
	}

	md.H2("Unresolved Derivatives")
	md.PlainText("")

	items := make([]string, len(unresolved))
	for i, u := range unresolved {
		items[i] = "`" + u.Dir + "` / `" + u.Name + "`"
	}
	md.BulletList(items...)
	md.PlainText("")
}

// writeOutcome writes the mutation counters for runs that touch the tree.
func (w *MarkdownWriter) writeOutcome(md *markdown.Markdown, report *model.RunReport) {
	if report.Mode == model.ModeScan {
		return
	}

	md.H2("Outcome")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Operation", "Count"},
		Rows: [][]string{
			{"Renamed", strconv.Itoa(report.Outcome.Renamed)},
			{"Deleted", strconv.Itoa(report.Outcome.Deleted)},
			{"Copied", strconv.Itoa(report.Outcome.Copied)},
			{"Copy skipped", strconv.Itoa(report.Outcome.CopySkipped)},
			{"Failed", strconv.Itoa(report.Outcome.Failed)},
		},
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [thumbsweep](https://github.com/mediasweep/thumbsweep)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
