//go:build !windows

package perms

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/akeeley/treekit/internal/event"
)

// applyPolicy chmods every enumerated item individually. There is no
// inheritable grant on POSIX filesystems, so per-item syscalls spread
// across a small pool are the fastest correct option.
func applyPolicy(ctx context.Context, cfg Config, items []item, total int64) (int64, error) {
	var processed atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(cfg.Workers)

	for _, it := range items {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			mode := cfg.Policy.FileMode
			if it.dir {
				mode = cfg.Policy.DirMode
			}
			if err := os.Chmod(it.path, mode); err != nil {
				slog.Warn("failed to set mode", "path", it.path, "error", err)
			}
			n := processed.Add(1)
			event.Emit(cfg.Events, event.Event{
				Type:  event.ItemProcessed,
				Path:  it.path,
				Files: n,
				Total: total,
			})
			return nil
		})
	}

	_ = g.Wait()
	return processed.Load(), ctx.Err()
}
