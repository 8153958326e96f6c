package model

// Action represents the reconciliation outcome for a derivative file.
//
// Design decision: We use typed string constants rather than iota-based
// integers because actions are serialized into reports and the run-history
// database; string values keep stored rows readable without a decode table.
type Action string

const (
	// ActionDelete marks a derivative whose originating main file was found
	// in the same folder. The file is safe to remove.
	ActionDelete Action = "delete"

	// ActionRetain marks a derivative with no matching main file.
	// Retained files are surfaced in reports for manual review but are
	// never touched.
	ActionRetain Action = "retain"
)

// String returns the string representation of the Action.
func (a Action) String() string {
	return string(a)
}

// IsValid returns true if this is a known action.
func (a Action) IsValid() bool {
	switch a {
	case ActionDelete, ActionRetain:
		return true
	default:
		return false
	}
}

// Mode identifies which pipeline produced a run report.
type Mode string

// Run mode constants.
const (
	// ModeScan previews decisions without mutating the tree.
	ModeScan Mode = "scan"
	// ModeClean deletes matched derivatives.
	ModeClean Mode = "clean"
	// ModeRelocate copies main files into a flat destination.
	ModeRelocate Mode = "relocate"
)

// String returns the string representation of the Mode.
func (m Mode) String() string {
	return string(m)
}

// IsValid returns true if this is a known mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeScan, ModeClean, ModeRelocate:
		return true
	default:
		return false
	}
}

// FileDecision is the reconciliation outcome for a single derivative file.
// Decisions are pure data: the pipeline apply step performs the actual
// filesystem mutation, so preview and execution share one decision path.
type FileDecision struct {
	// Name is the derivative's filename within its folder.
	Name string `json:"name"`

	// Action is delete when at least one main match exists, retain otherwise.
	Action Action `json:"action"`

	// BaseIdentity is the canonical stem the matcher compared against.
	// Kept for audit: it explains why Matches holds what it holds.
	BaseIdentity string `json:"base_identity"`

	// Matches lists the main filenames the derivative was matched to,
	// in candidate order. Empty for retained files.
	Matches []string `json:"matches,omitempty"`
}

// FolderPlan is the reconciliation result for one folder.
// All matching is confined to the folder's own listing; a derivative is
// never matched against files in another folder.
type FolderPlan struct {
	// Dir is the folder path as walked, so joining Dir with a decision's
	// Name addresses the file on disk.
	Dir string `json:"dir"`

	// Files is the number of regular files listed in the folder.
	Files int `json:"files"`

	// Images is the number of files with a recognized image extension.
	Images int `json:"images"`

	// Mains is the number of images classified as main files.
	Mains int `json:"mains"`

	// Derivatives is the number of images classified as derivatives.
	Derivatives int `json:"derivatives"`

	// Decisions holds one entry per derivative, in listing order.
	Decisions []FileDecision `json:"decisions,omitempty"`
}

// PlannedDeletes returns the number of decisions marked for deletion.
func (p *FolderPlan) PlannedDeletes() int {
	n := 0
	for _, d := range p.Decisions {
		if d.Action == ActionDelete {
			n++
		}
	}
	return n
}

// Unresolved returns the number of derivatives with no matching main file.
func (p *FolderPlan) Unresolved() int {
	n := 0
	for _, d := range p.Decisions {
		if d.Action == ActionRetain {
			n++
		}
	}
	return n
}
