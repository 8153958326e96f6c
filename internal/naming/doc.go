// Package naming implements the filename classification and matching engine.
//
// This package contains the three core operations:
//   - IsDerivative: decides whether a filename denotes a generated variant
//   - BaseIdentity: derives the canonical comparison stem of a filename
//   - FindMains: matches a derivative's identity against candidate main files
//
// All operations are pure functions over strings: no file content is read,
// no filesystem is touched, and any input string produces a deterministic
// result. A Ruleset carries the configured extensions and the dimension
// threshold; one Ruleset is safe for concurrent use across folder workers.
//
// Design decision: The matching rule is a union of independent predicates
// rather than one canonical comparison because real exports show
// inconsistent separator and truncation behavior. Recall is preferred over
// precision here: deleting a derivative only needs "at least one plausible
// main exists", and unmatched derivatives are always retained.
package naming
