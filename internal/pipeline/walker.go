package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/karrick/godirwalk"
)

// DiscoverFolders walks root and returns every directory beneath it,
// root itself included, in lexical order. Unreadable directories are
// logged and skipped; only a broken root fails the walk.
//
// Design decision: We collect the full directory list before any
// analysis instead of streaming folders into workers, because the list
// bounds the run (progress reporting needs a total) and trees of even
// hundreds of thousands of folders cost little memory as paths.
func DiscoverFolders(ctx context.Context, root string, logger *slog.Logger) ([]string, error) {
	var dirs []string

	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			// Abort the walk promptly on cancellation
			if err := ctx.Err(); err != nil {
				return err
			}
			if de.IsDir() {
				dirs = append(dirs, osPathname)
			}
			return nil
		},
		ErrorCallback: func(osPathname string, err error) godirwalk.ErrorAction {
			// Callback errors route through here too; cancellation
			// must halt the walk, not skip a node.
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return godirwalk.Halt
			}
			logger.Warn("skipping unreadable path",
				"path", osPathname,
				"error", err,
			)
			return godirwalk.SkipNode
		},
		// Sorted traversal keeps reports deterministic across runs.
		Unsorted: false,
	})
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}
	if err != nil {
		return nil, err
	}

	return dirs, nil
}

// listFileNames returns the names of the regular files in dir, in
// lexical order. Directories, symlinks, and other irregular entries are
// not filenames for matching and are excluded.
func listFileNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
