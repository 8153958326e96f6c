package model

import (
	"fmt"
	"time"
)

// Summary is a compact digest of a RunReport.
// It carries the numbers a user scans first, without the per-folder detail.
//
// Design decision: We derive a separate summary type rather than printing
// selected RunReport fields inline because:
// 1. It gives the report writers one curated view to render consistently
// 2. It can be serialized to JSON for tools that want structured but small output
// 3. The history command can show saved runs without decoding full reports
type Summary struct {
	// Root is the directory tree the run operated on.
	Root string `json:"root"`

	// Mode records which pipeline produced the run.
	Mode Mode `json:"mode"`

	// DryRun is true when a clean run made no mutations.
	DryRun bool `json:"dry_run,omitempty"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed"`

	// Folders is the number of directories visited.
	Folders int `json:"folders"`

	// Images is the number of recognized image files seen.
	Images int `json:"images"`

	// Mains is the number of images classified as main files.
	Mains int `json:"mains"`

	// Derivatives is the number of images classified as derivatives.
	Derivatives int `json:"derivatives"`

	// PlannedDeletes is the number of derivatives matched to a main file.
	PlannedDeletes int `json:"planned_deletes"`

	// Unresolved is the number of derivatives kept for manual review.
	Unresolved int `json:"unresolved"`

	// Deleted is the number of files a clean run removed.
	Deleted int `json:"deleted,omitempty"`

	// Copied is the number of files a relocate run copied.
	Copied int `json:"copied,omitempty"`

	// Failed is the number of per-file filesystem errors.
	Failed int `json:"failed,omitempty"`
}

// NewSummary creates a Summary from a RunReport.
func NewSummary(report *RunReport) *Summary {
	return &Summary{
		Root:           report.Root,
		Mode:           report.Mode,
		DryRun:         report.DryRun,
		StartedAt:      report.StartedAt,
		Elapsed:        report.Elapsed,
		Folders:        report.Totals.Folders,
		Images:         report.Totals.Images,
		Mains:          report.Totals.Mains,
		Derivatives:    report.Totals.Derivatives,
		PlannedDeletes: report.Totals.PlannedDeletes,
		Unresolved:     report.Totals.Unresolved,
		Deleted:        report.Outcome.Deleted,
		Copied:         report.Outcome.Copied,
		Failed:         report.Outcome.Failed,
	}
}

// String returns a one-line digest suitable for a final log message.
func (s *Summary) String() string {
	return fmt.Sprintf("%s: %d folders, %d images, %d mains, %d derivatives (%d matched, %d unresolved)",
		s.Mode, s.Folders, s.Images, s.Mains, s.Derivatives, s.PlannedDeletes, s.Unresolved)
}
