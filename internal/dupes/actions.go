package dupes

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// WriteReport persists the groups as pretty-printed JSON mapping digest
// strings to path arrays.
func WriteReport(path string, groups Groups) error {
	data, err := json.MarshalIndent(groups, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Delete removes every file in each group except the first, keeping one
// copy per digest. Failures are logged and skipped; the count of files
// actually removed is returned.
func Delete(groups Groups) int {
	var removed int
	for _, paths := range groups {
		for _, path := range paths[1:] {
			if err := os.Remove(path); err != nil {
				slog.Warn("failed to delete duplicate", "path", path, "error", err)
				continue
			}
			removed++
		}
	}
	return removed
}

// Move relocates every file in each group except the first into dir,
// renaming with a numeric suffix when the target name is taken.
// Failures are logged and skipped; the count of files moved is returned.
func Move(groups Groups, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create target directory: %w", err)
	}
	var moved int
	for _, paths := range groups {
		for _, path := range paths[1:] {
			target := uniquePath(dir, filepath.Base(path))
			if err := os.Rename(path, target); err != nil {
				slog.Warn("failed to move duplicate", "path", path, "error", err)
				continue
			}
			moved++
		}
	}
	return moved, nil
}

// uniquePath returns dir/base, appending _1, _2, ... before the
// extension until the name is free.
func uniquePath(dir, base string) string {
	target := filepath.Join(dir, base)
	if _, err := os.Lstat(target); err != nil {
		return target
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 1; ; i++ {
		target = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if _, err := os.Lstat(target); err != nil {
			return target
		}
	}
}
