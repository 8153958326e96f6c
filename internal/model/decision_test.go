package model

import "testing"

// TestActionIsValid tests the IsValid method of Action.
func TestActionIsValid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		action   Action
		expected bool
	}{
		{"delete", ActionDelete, true},
		{"retain", ActionRetain, true},
		{"empty", Action(""), false},
		{"unknown", Action("archive"), false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if tc.action.IsValid() != tc.expected {
				t.Errorf("IsValid() = %v, expected %v", tc.action.IsValid(), tc.expected)
			}
		})
	}
}

// TestModeIsValid tests the IsValid method of Mode.
func TestModeIsValid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		mode     Mode
		expected bool
	}{
		{"scan", ModeScan, true},
		{"clean", ModeClean, true},
		{"relocate", ModeRelocate, true},
		{"empty", Mode(""), false},
		{"unknown", Mode("verify"), false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if tc.mode.IsValid() != tc.expected {
				t.Errorf("IsValid() = %v, expected %v", tc.mode.IsValid(), tc.expected)
			}
		})
	}
}

// TestFolderPlanCounts tests PlannedDeletes and Unresolved counting.
func TestFolderPlanCounts(t *testing.T) {
	t.Parallel()

	plan := &FolderPlan{
		Dir:         "gallery",
		Files:       5,
		Images:      4,
		Mains:       2,
		Derivatives: 2,
		Decisions: []FileDecision{
			{Name: "sunset-150x150.jpg", Action: ActionDelete, BaseIdentity: "sunset", Matches: []string{"sunset.jpg"}},
			{Name: "orphan-100x100.jpg", Action: ActionRetain, BaseIdentity: "orphan"},
		},
	}

	if plan.PlannedDeletes() != 1 {
		t.Errorf("PlannedDeletes() = %d, expected 1", plan.PlannedDeletes())
	}
	if plan.Unresolved() != 1 {
		t.Errorf("Unresolved() = %d, expected 1", plan.Unresolved())
	}
}

// TestFolderPlanCountsEmpty tests counting on a plan with no decisions.
func TestFolderPlanCountsEmpty(t *testing.T) {
	t.Parallel()

	plan := &FolderPlan{Dir: "empty"}
	if plan.PlannedDeletes() != 0 {
		t.Errorf("PlannedDeletes() = %d, expected 0", plan.PlannedDeletes())
	}
	if plan.Unresolved() != 0 {
		t.Errorf("Unresolved() = %d, expected 0", plan.Unresolved())
	}
}
