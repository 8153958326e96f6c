// Package config provides configuration structures and utilities for thumbsweep.
// It defines the classification rules (extensions, dimension threshold),
// orchestration settings, and report generation preferences, with values
// merged from defaults, an optional YAML file, and CLI flags.
package config
