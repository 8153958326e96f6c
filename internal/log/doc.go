// Package log provides logging with home directory masking, built on top
// of the standard slog package.
//
// This package extends slog to provide:
//   - Rewriting of absolute paths under the home directory to ~/... form
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// A filesystem reconciliation tool logs paths constantly; masking keeps
// shared logs and bug reports from exposing the account name while staying
// readable.
//
// # Usage
//
//	// Create a logger with path masking
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Warn("delete failed",
//	    "path", "/home/alice/photos/a.jpg", // Logged as ~/photos/a.jpg
//	    "error", err,
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
