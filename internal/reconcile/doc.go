// Package reconcile turns one folder listing into deletion decisions.
//
// PlanFolder is the single decision function shared by preview and
// execution: a scan run renders its plans, a clean run applies them, and
// because both call the same function they can never diverge. The package
// performs no I/O; callers supply the listing and apply the decisions.
package reconcile
