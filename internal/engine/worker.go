package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/akeeley/treekit/internal/event"
	"github.com/akeeley/treekit/internal/hasher"
	"github.com/akeeley/treekit/internal/platform"
	"github.com/akeeley/treekit/internal/stats"
)

// pool executes the copy tasks of one run across a bounded set of workers.
type pool struct {
	workers int
	verify  bool
	tracker *stats.Tracker
	events  chan<- event.Event
	tmp     *tmpRegistry
}

func newPool(workers int, verify bool, tracker *stats.Tracker, events chan<- event.Event) *pool {
	return &pool{
		workers: workers,
		verify:  verify,
		tracker: tracker,
		events:  events,
		tmp:     newTmpRegistry(),
	}
}

// run dispatches all tasks to the workers and blocks until every worker
// has drained. Cancellation is polled before each task; tasks already in
// flight finish and their results still count.
func (p *pool) run(ctx context.Context, tasks []Task) {
	taskCh := make(chan Task)

	var wg sync.WaitGroup
	for range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskCh {
				p.process(ctx, task)
			}
		}()
	}

feed:
	for _, task := range tasks {
		select {
		case taskCh <- task:
		case <-ctx.Done():
			break feed
		}
	}
	close(taskCh)
	wg.Wait()
}

// close removes any temporary files left behind by an interrupted run.
func (p *pool) close() {
	p.tmp.cleanup()
}

// process handles exactly one task, converting every failure into counter
// updates rather than letting it escape the pool.
func (p *pool) process(ctx context.Context, task Task) Outcome {
	if ctx.Err() != nil {
		return Outcome{Task: task, Kind: Skipped}
	}

	size, err := p.copyFile(task)
	if err != nil {
		slog.Warn("copy failed", "src", task.Src, "dst", task.Dst, "error", err)
		p.tracker.AddError()
		event.Emit(p.events, event.Event{Type: event.FileFailed, Path: task.Src, Size: task.Size, Err: err})
		return Outcome{Task: task, Kind: IOError, Err: err}
	}

	if p.verify {
		mismatch, err := p.verifyCopy(task)
		if err != nil {
			slog.Warn("verify failed", "src", task.Src, "dst", task.Dst, "error", err)
			p.tracker.AddError()
			event.Emit(p.events, event.Event{Type: event.FileFailed, Path: task.Src, Size: task.Size, Err: err})
			return Outcome{Task: task, Kind: IOError, Err: err}
		}
		if mismatch {
			// A mismatch after a clean copy signals silent corruption,
			// kept apart from transient I/O failures.
			err := fmt.Errorf("digest mismatch %s -> %s", task.Src, task.Dst)
			slog.Error("digest mismatch", "src", task.Src, "dst", task.Dst)
			p.tracker.AddVerifyFailure()
			event.Emit(p.events, event.Event{Type: event.VerifyMismatch, Path: task.Src, Err: err})
			return Outcome{Task: task, Kind: Mismatch, Err: err}
		}
	}

	files, copied := p.tracker.AddCopied(size)
	event.Emit(p.events, event.Event{
		Type:  event.FileCopied,
		Path:  filepath.Base(task.Src),
		Size:  size,
		Files: files,
		Bytes: copied,
		Rate:  p.tracker.Throughput(copied),
	})
	return Outcome{Task: task, Kind: Copied}
}

// copyFile copies src to dst preserving mode and mtimes. Data lands in a
// uniquely named temporary file first and is renamed into place, so a
// half-written destination is never observable under its final name.
func (p *pool) copyFile(task Task) (int64, error) {
	info, err := os.Stat(task.Src)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", task.Src, err)
	}

	dir := filepath.Dir(task.Dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create parent dir %s: %w", dir, err)
	}

	tmpName := fmt.Sprintf(".%s.%s.treekit-tmp", filepath.Base(task.Dst), uuid.New().String()[:8])
	tmpPath := filepath.Join(dir, tmpName)

	p.tmp.add(tmpPath)
	defer func() {
		p.tmp.remove(tmpPath)
		_ = os.Remove(tmpPath) // no-op if rename succeeded
	}()

	tmpFd, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return 0, fmt.Errorf("create tmp %s: %w", tmpPath, err)
	}

	var written int64
	if info.Size() > 0 {
		result, err := platform.CopyFile(task.Src, tmpFd, info.Size())
		if err != nil {
			tmpFd.Close()
			return 0, fmt.Errorf("copy data %s: %w", task.Src, err)
		}
		written = result.BytesWritten
	}

	if err := tmpFd.Chmod(info.Mode().Perm()); err != nil {
		tmpFd.Close()
		return 0, fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if err := tmpFd.Close(); err != nil {
		return 0, fmt.Errorf("close tmp %s: %w", tmpPath, err)
	}
	if err := os.Chtimes(tmpPath, info.ModTime(), info.ModTime()); err != nil {
		return 0, fmt.Errorf("set times %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, task.Dst); err != nil {
		return 0, fmt.Errorf("rename %s -> %s: %w", tmpPath, task.Dst, err)
	}

	return written, nil
}

// verifyCopy compares source and destination digests after the copy.
// A true first return means both files hashed cleanly but differ.
func (p *pool) verifyCopy(task Task) (bool, error) {
	srcDigest, err := hasher.HashFile(task.Src)
	if err != nil {
		return false, fmt.Errorf("hash source: %w", err)
	}
	dstDigest, err := hasher.HashFile(task.Dst)
	if err != nil {
		return false, fmt.Errorf("hash destination: %w", err)
	}
	return srcDigest != dstDigest, nil
}
