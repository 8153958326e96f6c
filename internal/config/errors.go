package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and ValidateDest() and
// provide specific information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoRoot is returned when no root directory is specified.
	ErrNoRoot = errors.New("no root directory specified")

	// ErrNoDest is returned when a relocate run has no destination directory.
	ErrNoDest = errors.New("no destination directory specified")

	// ErrDestInsideRoot is returned when the relocate destination lives
	// inside the source tree. Copying into the tree being walked would
	// feed relocated files back into later folders.
	ErrDestInsideRoot = errors.New("destination directory is inside the source tree")

	// ErrNoExtensions is returned when the image extension list is empty.
	// With no recognized extensions every file is invisible to the engine,
	// which is never what the user meant.
	ErrNoExtensions = errors.New("no image extensions configured")

	// ErrInvalidExtension is returned when a configured extension does not
	// start with a dot. Matching is a suffix test, so ".jpg" and "jpg"
	// behave very differently.
	ErrInvalidExtension = errors.New("invalid extension: must start with a dot")

	// ErrInvalidThreshold is returned when a dimension threshold is not
	// positive. A zero threshold would classify every dimension-suffixed
	// file as a main.
	ErrInvalidThreshold = errors.New("invalid dimension threshold: must be positive")

	// ErrInvalidConcurrency is returned when the folder concurrency is not
	// positive. Zero workers would mean no analysis at all.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
