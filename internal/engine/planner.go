package engine

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/akeeley/treekit/internal/filter"
	"github.com/akeeley/treekit/internal/walker"
)

// Plan is the flat list of copy tasks for one run, plus the byte total
// used as the progress denominator.
type Plan struct {
	Tasks      []Task
	TotalBytes int64
}

// BuildPlan traverses srcRoot and builds the copy plan. Every directory is
// mirrored under dstRoot up front so that parallel file writes never race
// on directory creation; every file is included iff it matches patterns.
// Returns early when ctx is cancelled.
func BuildPlan(ctx context.Context, srcRoot, dstRoot string, patterns filter.Patterns) (Plan, error) {
	var plan Plan

	for entry := range walker.Walk(srcRoot) {
		if err := ctx.Err(); err != nil {
			return plan, err
		}

		rel, err := filepath.Rel(srcRoot, entry.Dir)
		if err != nil {
			slog.Warn("skipping unresolvable directory", "dir", entry.Dir, "error", err)
			continue
		}
		dstDir := filepath.Join(dstRoot, rel)
		if err := os.MkdirAll(dstDir, 0o755); err != nil {
			slog.Warn("mkdir failed", "dir", dstDir, "error", err)
		}

		for _, src := range entry.Files {
			name := filepath.Base(src)
			if !patterns.Match(name) {
				continue
			}
			// Races and broken symlinks leave the size unknown; the
			// task is still planned and fails (or succeeds) at copy time.
			var size int64
			if info, err := os.Stat(src); err == nil {
				size = info.Size()
			}
			plan.Tasks = append(plan.Tasks, Task{
				Src:  src,
				Dst:  filepath.Join(dstDir, name),
				Size: size,
			})
			plan.TotalBytes += size
		}
	}

	return plan, nil
}
