// Package stats tracks the shared counters of one operation run.
//
// Every worker of a run mutates the same Tracker; all increments go through
// a single mutex so that any (files, bytes) pair read out of it is globally
// consistent and monotonic. The lock is held only for O(1) counter updates,
// never across I/O. A Tracker is created per invocation and discarded at
// its end; nothing is shared between runs.
package stats

import (
	"fmt"
	"sync"
	"time"
)

// minElapsed floors the wall-clock term of throughput calculations so a
// burst of completions right after start does not divide by ~zero.
const minElapsed = 100 * time.Millisecond

// Tracker accumulates per-run progress counters. Workers may only
// increment and read; raw fields are never exposed.
type Tracker struct {
	mu             sync.Mutex
	filesCopied    int64
	bytesCopied    int64
	totalFiles     int64
	totalBytes     int64
	errorCount     int64
	verifyFailures int64
	startTime      time.Time
}

// New creates a Tracker with startTime set to now.
func New() *Tracker {
	return &Tracker{startTime: time.Now()}
}

// SetTotals records the planned denominators, set once after planning.
func (t *Tracker) SetTotals(files, bytes int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totalFiles = files
	t.totalBytes = bytes
}

// AddCopied folds one successful copy into the counters and returns the
// updated (filesCopied, bytesCopied) pair read under the same lock.
func (t *Tracker) AddCopied(bytes int64) (files, copied int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filesCopied++
	t.bytesCopied += bytes
	return t.filesCopied, t.bytesCopied
}

// AddError counts a generic per-item I/O failure.
func (t *Tracker) AddError() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errorCount++
}

// AddVerifyFailure counts a digest mismatch. Mismatches indicate silent
// corruption and are tracked separately from I/O errors; they also count
// toward the run's total error count.
func (t *Tracker) AddVerifyFailure() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.verifyFailures++
	t.errorCount++
}

// Throughput returns bytes per second for the given copied-bytes reading,
// with elapsed time floored at minElapsed.
func (t *Tracker) Throughput(copied int64) float64 {
	elapsed := time.Since(t.startTime)
	if elapsed < minElapsed {
		elapsed = minElapsed
	}
	return float64(copied) / elapsed.Seconds()
}

// Snapshot is a consistent point-in-time read of all counters.
type Snapshot struct {
	FilesCopied    int64
	BytesCopied    int64
	TotalFiles     int64
	TotalBytes     int64
	ErrorCount     int64
	VerifyFailures int64
	Elapsed        time.Duration
}

// Snapshot returns all counters read under one lock acquisition.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		FilesCopied:    t.filesCopied,
		BytesCopied:    t.bytesCopied,
		TotalFiles:     t.totalFiles,
		TotalBytes:     t.totalBytes,
		ErrorCount:     t.errorCount,
		VerifyFailures: t.verifyFailures,
		Elapsed:        time.Since(t.startTime),
	}
}

func (s Snapshot) String() string {
	return fmt.Sprintf("copied=%d/%d bytes=%d/%d errors=%d mismatches=%d",
		s.FilesCopied, s.TotalFiles, s.BytesCopied, s.TotalBytes,
		s.ErrorCount, s.VerifyFailures)
}
