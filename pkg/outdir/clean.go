// Package outdir prepares the report output directory.
package outdir

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const dirPerm = 0o750

// CleanResult counts what Clean did.
type CleanResult struct {
	Removed int
	Failed  int
}

// Clean empties dir, creating it when it does not exist. Only top-level
// entries are considered: files and symlinks are unlinked, directories are
// removed only when already empty. Nothing is deleted recursively. Failures
// on individual entries are logged and skipped. The returned error is set
// only when dir itself cannot be listed or created.
func Clean(ctx context.Context, dir string, logger *slog.Logger) (CleanResult, error) {
	var result CleanResult

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		mkErr := os.MkdirAll(dir, dirPerm)
		if mkErr != nil {
			return result, fmt.Errorf("create output dir: %w", mkErr)
		}

		logger.InfoContext(ctx, "cleaned directory", "dir", dir)

		return result, nil
	}

	if err != nil {
		return result, fmt.Errorf("list output dir: %w", err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		removed, removeErr := removeEntry(path, entry.Type())
		if removeErr != nil {
			logger.WarnContext(ctx, "failed to delete", "path", path, "error", removeErr)

			result.Failed++

			continue
		}

		if removed {
			result.Removed++
		}
	}

	logger.InfoContext(ctx, "cleaned directory", "dir", dir, "removed", result.Removed, "failed", result.Failed)

	return result, nil
}

// removeEntry deletes one directory entry. Special files (sockets, pipes,
// devices) are left in place and not reported as failures.
func removeEntry(path string, mode fs.FileMode) (bool, error) {
	switch {
	case mode.IsRegular(), mode&fs.ModeSymlink != 0, mode.IsDir():
		// os.Remove refuses non-empty directories, which keeps this non-recursive.
		err := os.Remove(path)

		return err == nil, err
	default:
		return false, nil
	}
}
