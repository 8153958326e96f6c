// Package model defines the core data structures used throughout thumbsweep.
//
// This package contains the following main types:
//   - FileDecision: the reconciliation outcome for a single derivative file
//   - FolderPlan: all decisions for one folder, with classification counts
//   - RunReport: the aggregate result of a scan, clean, or relocate run
//   - Summary: a compact digest of a RunReport for terminal output
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (reconcile, pipeline, report, database) need
// to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
