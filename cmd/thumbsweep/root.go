// Package main provides the entry point for the thumbsweep CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for thumbsweep.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thumbsweep",
		Short: "Reconcile thumbnail and derivative images with their originals",
		Long: `Thumbsweep finds generated image derivatives (thumbnails, resized copies,
scaled exports) in a photo tree, matches them back to the main images they
were generated from, and plans a per-folder cleanup.

By default nothing is mutated: 'scan' previews the plan. Use 'clean' to
delete matched derivatives, or 'relocate' to copy the surviving main
images into a flat directory.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewCleanCmd())
	cmd.AddCommand(NewRelocateCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
