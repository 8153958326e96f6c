package model

import "time"

// RunReport is the aggregate result of one thumbsweep run.
// It contains every folder plan with derivatives plus run-wide counters.
//
// Design decision: We use a single struct rather than per-mode result types
// to simplify serialization and database storage. Fields that only apply to
// one mode (Dest, DryRun) are omitted from JSON when empty, and readers key
// off Mode.
type RunReport struct {
	// === Run Identity ===

	// Root is the directory tree the run operated on.
	Root string `json:"root"`

	// Dest is the flat destination directory. Set only for relocate runs.
	Dest string `json:"dest,omitempty"`

	// Mode records which pipeline produced this report.
	Mode Mode `json:"mode"`

	// DryRun is true when a clean run was downgraded to preview-only.
	DryRun bool `json:"dry_run,omitempty"`

	// StartedAt is the timestamp when the run began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed"`

	// === Folder Results ===

	// Folders holds plans for folders that contained at least one
	// derivative. Folders with nothing to reconcile are counted in
	// Totals but omitted here to bound report size on large trees.
	Folders []FolderPlan `json:"folders,omitempty"`

	// Totals aggregates classification counts across every visited folder.
	Totals Totals `json:"totals"`

	// Outcome counts what the run physically did.
	Outcome Outcome `json:"outcome"`

	// FolderDirs is the discovery list the pipeline steps operate on.
	// Working data only: readers of a finished report never need it.
	FolderDirs []string `json:"-"`
}

// Totals aggregates classification counts across every visited folder.
type Totals struct {
	// Folders is the number of directories visited.
	Folders int `json:"folders"`

	// Files is the number of regular files listed.
	Files int `json:"files"`

	// Images is the number of files with a recognized image extension.
	Images int `json:"images"`

	// Mains is the number of images classified as main files.
	Mains int `json:"mains"`

	// Derivatives is the number of images classified as derivatives.
	Derivatives int `json:"derivatives"`

	// PlannedDeletes is the number of derivatives with at least one match.
	PlannedDeletes int `json:"planned_deletes"`

	// Unresolved is the number of derivatives with no matching main file.
	// These are retained and listed for manual review.
	Unresolved int `json:"unresolved"`
}

// Outcome counts the filesystem mutations a run performed.
// A scan run (and a dry-run clean) leaves every counter at zero.
type Outcome struct {
	// Renamed counts files fixed by the normalization pre-pass.
	Renamed int `json:"renamed,omitempty"`

	// Deleted counts derivatives removed by a clean run.
	Deleted int `json:"deleted,omitempty"`

	// Copied counts main files copied by a relocate run.
	Copied int `json:"copied,omitempty"`

	// CopySkipped counts relocations skipped because the destination
	// name already existed.
	CopySkipped int `json:"copy_skipped,omitempty"`

	// Failed counts per-file filesystem errors. Failures are logged and
	// counted, never escalated to a run-level error.
	Failed int `json:"failed,omitempty"`
}

// NewRunReport creates a report for a run starting now.
func NewRunReport(root string, mode Mode) *RunReport {
	return &RunReport{
		Root:      root,
		Mode:      mode,
		StartedAt: time.Now(),
	}
}

// AddFolderPlan merges one folder's plan into the report totals.
// Plans with derivatives are kept for the report body; empty folders
// only contribute counts.
func (r *RunReport) AddFolderPlan(plan FolderPlan) {
	r.Totals.Folders++
	r.Totals.Files += plan.Files
	r.Totals.Images += plan.Images
	r.Totals.Mains += plan.Mains
	r.Totals.Derivatives += plan.Derivatives
	r.Totals.PlannedDeletes += plan.PlannedDeletes()
	r.Totals.Unresolved += plan.Unresolved()

	if plan.Derivatives > 0 {
		r.Folders = append(r.Folders, plan)
	}
}

// UnresolvedDecisions returns every retain decision in the report,
// paired with its folder, in report order.
func (r *RunReport) UnresolvedDecisions() []UnresolvedFile {
	var out []UnresolvedFile
	for _, plan := range r.Folders {
		for _, d := range plan.Decisions {
			if d.Action == ActionRetain {
				out = append(out, UnresolvedFile{Dir: plan.Dir, Name: d.Name})
			}
		}
	}
	return out
}

// UnresolvedFile locates one retained derivative within the run tree.
type UnresolvedFile struct {
	// Dir is the folder the file was found in.
	Dir string `json:"dir"`
	// Name is the derivative's filename.
	Name string `json:"name"`
}
