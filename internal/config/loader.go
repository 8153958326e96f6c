package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".thumbsweep"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .thumbsweep configuration file.
// Every field is optional: absent fields leave the built-in defaults
// untouched, and explicitly set CLI flags override whatever the file says.
type File struct {
	// Extensions replaces the recognized image extension list.
	Extensions []string `yaml:"extensions,omitempty"`

	// InnerExtensions replaces the double-extension inner list.
	InnerExtensions []string `yaml:"inner_extensions,omitempty"`

	// MinWidth overrides the dimension threshold width.
	MinWidth int `yaml:"min_width,omitempty"`

	// MinHeight overrides the dimension threshold height.
	MinHeight int `yaml:"min_height,omitempty"`

	// Concurrency overrides the folder analysis parallelism.
	Concurrency int `yaml:"concurrency,omitempty"`

	// Normalize toggles the filename normalization pre-pass on clean runs.
	// A pointer distinguishes "absent" from an explicit false.
	Normalize *bool `yaml:"normalize,omitempty"`

	// SaveToDB toggles run-history persistence.
	SaveToDB *bool `yaml:"save_to_db,omitempty"`

	// DBDir overrides the run-history database directory.
	DBDir string `yaml:"db_dir,omitempty"`
}

// LoadConfigFile loads configuration overrides from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply overlays file values onto the config. The caller applies
// explicitly set CLI flags afterwards, so the precedence is
// defaults < file < flags.
func (c *Config) Apply(f *File) {
	if f == nil {
		return
	}
	if len(f.Extensions) > 0 {
		c.Extensions = f.Extensions
	}
	if len(f.InnerExtensions) > 0 {
		c.InnerExtensions = f.InnerExtensions
	}
	if f.MinWidth > 0 {
		c.MinMainWidth = f.MinWidth
	}
	if f.MinHeight > 0 {
		c.MinMainHeight = f.MinHeight
	}
	if f.Concurrency > 0 {
		c.Concurrency = f.Concurrency
	}
	if f.Normalize != nil {
		c.Normalize = *f.Normalize
	}
	if f.SaveToDB != nil {
		c.SaveToDB = *f.SaveToDB
	}
	if f.DBDir != "" {
		c.DBDir = f.DBDir
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .thumbsweep in the current directory
// 3. Look for thumbsweep.yaml in the XDG config directory
// 4. Look for .thumbsweep in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check XDG config directory
	xdgConfig := filepath.Join(XDGConfigDir(), "thumbsweep.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
