package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/mediasweep/thumbsweep/internal/naming"
)

// Default configuration values.
// The classification defaults live in the naming package next to the rules
// they parameterize; this file carries the orchestration defaults.
const (
	// DefaultConcurrency is the number of folders analyzed in parallel.
	// Analysis is pure string work, so the limit mostly bounds how many
	// directory listings are held in memory at once. Four keeps memory
	// flat on large trees while still saturating typical disks.
	DefaultConcurrency = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "thumbsweep"
)

// Config holds all configuration options for thumbsweep.
// This struct is populated from defaults, then an optional YAML file, then
// explicitly set CLI flags, and is passed through the application rather
// than read from global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., RulesConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// Root is the directory tree to operate on.
	Root string

	// Dest is the flat destination directory for relocate runs.
	// Unused by scan and clean.
	Dest string

	// Extensions are the filename suffixes treated as images.
	// Files without one of these suffixes are invisible to the engine.
	Extensions []string

	// InnerExtensions are the extensions recognized inside a
	// double-extension name such as photo.jpg.webp.
	InnerExtensions []string

	// MinMainWidth is the width at which a trailing dimension suffix stops
	// marking a file as a derivative. See naming.DefaultMinWidth.
	MinMainWidth int

	// MinMainHeight is the height counterpart of MinMainWidth.
	MinMainHeight int

	// Concurrency is the number of folders analyzed in parallel.
	Concurrency int

	// Normalize enables the filename normalization pre-pass on clean runs.
	// Scan runs never rename regardless of this setting.
	Normalize bool

	// DryRun downgrades a clean run to decisions-only: nothing is renamed
	// or deleted, but the full report is produced.
	DryRun bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of human-readable text.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output with tables and a
	// decision pie chart. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// DBDir is the directory holding the run-history SQLite database.
	// Defaults to the XDG data directory (~/.local/share/thumbsweep on Linux).
	DBDir string

	// SaveToDB indicates whether to record the run in the history database.
	SaveToDB bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .thumbsweep in the current directory,
	// the XDG config directory, and the user's home directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero (extensions, thresholds,
// concurrency). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Extensions:      append([]string(nil), naming.DefaultExtensions...),
		InnerExtensions: append([]string(nil), naming.DefaultInnerExtensions...),
		MinMainWidth:    naming.DefaultMinWidth,
		MinMainHeight:   naming.DefaultMinHeight,
		Concurrency:     DefaultConcurrency,
		Normalize:       true,
		SaveToDB:        true,
		DBDir:           XDGDataDir(),
	}
}

// Ruleset builds the classification engine configured by this Config.
func (c *Config) Ruleset() naming.Ruleset {
	return naming.NewRuleset(c.Extensions, c.InnerExtensions, c.MinMainWidth, c.MinMainHeight)
}

// XDGDataDir returns the XDG data directory for thumbsweep.
// On Linux: ~/.local/share/thumbsweep
// On macOS: ~/Library/Application Support/thumbsweep
// On Windows: %LOCALAPPDATA%\thumbsweep
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for thumbsweep.
// On Linux: ~/.config/thumbsweep
// On macOS: ~/Library/Application Support/thumbsweep
// On Windows: %APPDATA%\thumbsweep
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate once after CLI parsing rather than at each
// point of use, and return the first error found: fixing one error often
// makes others irrelevant.
func (c *Config) Validate() error {
	if c.Root == "" {
		return ErrNoRoot
	}

	if len(c.Extensions) == 0 {
		return ErrNoExtensions
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
		}
	}
	for _, ext := range c.InnerExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
		}
	}

	if c.MinMainWidth <= 0 || c.MinMainHeight <= 0 {
		return ErrInvalidThreshold
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// ValidateDest checks the relocate-specific fields: a destination is
// required and must not live inside the source tree, because relocation
// into the tree being scanned would feed copies back into later folders.
func (c *Config) ValidateDest() error {
	if c.Dest == "" {
		return ErrNoDest
	}

	root, err := filepath.Abs(c.Root)
	if err != nil {
		return err
	}
	dest, err := filepath.Abs(c.Dest)
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(root, dest)
	if err != nil {
		// Different volumes cannot nest.
		return nil
	}
	if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		return ErrDestInsideRoot
	}
	return nil
}
