//go:build windows

package perms

import (
	"context"
	"log/slog"
	"os/exec"

	"github.com/akeeley/treekit/internal/event"
)

// applyPolicy grants inheritable modify access once per root and lets
// NTFS propagate it, which beats millions of per-item ACL edits on large
// trees. The enumerated list is then replayed purely for progress; the
// grant itself cannot be interrupted mid-tree, so cancellation only
// takes effect between roots and during the replay.
func applyPolicy(ctx context.Context, cfg Config, items []item, total int64) (int64, error) {
	for _, root := range cfg.Roots {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		cmd := exec.CommandContext(ctx, "icacls", root, "/grant", "Everyone:(OI)(CI)M", "/T", "/C")
		if out, err := cmd.CombinedOutput(); err != nil {
			slog.Warn("recursive grant failed", "root", root, "error", err, "output", string(out))
		}
	}

	var processed int64
	for _, it := range items {
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}
		processed++
		event.Emit(cfg.Events, event.Event{
			Type:  event.ItemProcessed,
			Path:  it.path,
			Files: processed,
			Total: total,
		})
	}
	return processed, nil
}
