// Package event defines the progress events emitted by long-running
// operations. A caller consumes the stream to render feedback; the single
// terminal outcome of an operation is returned from the operation itself,
// never through this stream.
package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	PlanStarted Type = iota + 1
	PlanComplete
	FileCopied
	FileFailed
	VerifyMismatch
	ItemProcessed
	DuplicateFound
)

var typeNames = [...]string{
	PlanStarted:    "PlanStarted",
	PlanComplete:   "PlanComplete",
	FileCopied:     "FileCopied",
	FileFailed:     "FileFailed",
	VerifyMismatch: "VerifyMismatch",
	ItemProcessed:  "ItemProcessed",
	DuplicateFound: "DuplicateFound",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event represents a single progress update from an operation.
type Event struct {
	Type      Type
	Timestamp time.Time
	Path      string  // current item
	Size      int64   // size of the current item
	Files     int64   // files processed so far (copy) or items (perms)
	Bytes     int64   // total bytes copied so far
	Total     int64   // planned total (items or bytes, per event type)
	Rate      float64 // instantaneous throughput, bytes/sec
	Err       error
}

// Emit stamps e and sends it to ch without blocking. A nil or full channel
// drops the event: progress display is best-effort, the counters carried by
// later events remain consistent.
func Emit(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
	}
}
