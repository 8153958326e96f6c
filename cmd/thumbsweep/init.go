package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/thumbsweep.yaml
var configTemplate embed.FS

// configFileName is the default configuration file name.
const configFileName = ".thumbsweep"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new thumbsweep configuration file",
		Long: `Initialize creates a new .thumbsweep configuration file in the current directory.

The generated file includes:
- Default image extensions and the double-extension inner list
- The dimension threshold that keeps large originals safe
- Analysis concurrency, normalization, and history settings

Examples:
  # Create .thumbsweep in current directory
  thumbsweep init

  # Create config file at a specific path
  thumbsweep init -o myconfig.yaml

  # Force overwrite existing file
  thumbsweep init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/thumbsweep.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write configuration file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Printf("Created configuration file: %s\n", outputPath)
	fmt.Println("\nEdit this file to adjust analysis settings such as:")
	fmt.Println("  - Recognized image extensions")
	fmt.Println("  - The dimension threshold for large originals")
	fmt.Println("  - Normalization and run-history behavior")

	return nil
}
