// Package progress wraps progressbar with enabled/disabled handling.
// All methods are no-ops when disabled, so callers never branch.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

const updateInterval = 50 * time.Millisecond

type Bar struct {
	bar *progressbar.ProgressBar
}

// NewBytes creates a byte-denominated bar for copy progress.
func NewBytes(enabled bool, totalBytes int64) *Bar {
	if !enabled {
		return &Bar{}
	}
	return &Bar{bar: progressbar.NewOptions64(totalBytes,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(updateInterval),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
	)}
}

// NewCount creates an item-denominated bar for permission and scan
// progress.
func NewCount(enabled bool, total int64) *Bar {
	if !enabled {
		return &Bar{}
	}
	return &Bar{bar: progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(updateInterval),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWidth(40),
	)}
}

// Set moves the bar to an absolute value.
func (b *Bar) Set(n int64) {
	if b.bar != nil {
		_ = b.bar.Set64(n)
	}
}

// Describe updates the text shown next to the bar.
func (b *Bar) Describe(s string) {
	if b.bar != nil {
		b.bar.Describe(s)
	}
}

// Clear erases the bar line, typically before printing a summary.
func (b *Bar) Clear() {
	if b.bar != nil {
		_ = b.bar.Clear()
	}
}

// Finish completes the bar and prints a final summary line.
func (b *Bar) Finish(msg string) {
	if b.bar != nil {
		_ = b.bar.Finish()
	}
	fmt.Fprintln(os.Stderr, msg)
}
