// Package logging provides slog plumbing shared by all commands: a
// fan-out handler for logging to the terminal and a file at once, and
// a best-effort writer so a full disk never aborts an operation.
package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// MultiHandler fans records out to every wrapped handler. Each handler
// keeps its own level filtering.
type MultiHandler struct {
	handlers []slog.Handler
}

func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Enabled reports true if any wrapped handler accepts the level.
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, rec.Level) {
			continue
		}
		if err := h.Handle(ctx, rec.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return NewMultiHandler(next...)
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithGroup(name)
	}
	return NewMultiHandler(next...)
}

// bestEffortWriter swallows write errors. Log sinks must never take an
// operation down with them.
type bestEffortWriter struct {
	w io.Writer
}

// BestEffort wraps w so writes always report success.
func BestEffort(w io.Writer) io.Writer {
	return &bestEffortWriter{w: w}
}

func (b *bestEffortWriter) Write(p []byte) (int, error) {
	_, _ = b.w.Write(p)
	return len(p), nil
}
