// Package main provides the entry point for the thumbsweep CLI.
//
// Thumbsweep reconciles generated image derivatives (thumbnails, resized
// copies, scaled exports) with the main images they came from. It walks a
// photo tree, matches derivative filenames back to their originals, and
// plans a per-folder cleanup.
//
// Usage:
//
//	thumbsweep scan <root>
//	thumbsweep clean <root>
//	thumbsweep relocate <root> <dest>
//
// See --help for all available options.
package main

// main is the entry point for thumbsweep.
func main() {
	Execute()
}
