package testutils

import (
	"context"
	"log/slog"
	"sync"
)

// LogEntry is a captured log record: its level, message and attributes.
type LogEntry map[string]any

// LogCapture is a slog.Handler keeping every record in memory.
type LogCapture struct {
	mu      sync.Mutex
	entries []LogEntry
	attrs   []slog.Attr
	shared  *LogCapture
}

// NewLogCapture returns a capturing handler and a logger writing to it.
func NewLogCapture() (*LogCapture, *slog.Logger) {
	h := &LogCapture{}
	h.shared = h
	return h, slog.New(h)
}

func (h *LogCapture) Enabled(context.Context, slog.Level) bool { return true }

func (h *LogCapture) Handle(_ context.Context, r slog.Record) error {
	entry := LogEntry{"level": r.Level.String(), "message": r.Message}
	for _, a := range h.attrs {
		entry[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		entry[a.Key] = a.Value.Any()
		return true
	})

	h.shared.mu.Lock()
	h.shared.entries = append(h.shared.entries, entry)
	h.shared.mu.Unlock()
	return nil
}

func (h *LogCapture) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogCapture{
		attrs:  append(append([]slog.Attr{}, h.attrs...), attrs...),
		shared: h.shared,
	}
}

// WithGroup ignores groups; attributes stay flat.
func (h *LogCapture) WithGroup(string) slog.Handler { return h }

// Entries returns the captured records.
func (h *LogCapture) Entries() []LogEntry {
	h.shared.mu.Lock()
	defer h.shared.mu.Unlock()
	out := make([]LogEntry, len(h.shared.entries))
	copy(out, h.shared.entries)
	return out
}

// Messages returns the messages of the captured records.
func (h *LogCapture) Messages() []string {
	entries := h.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i], _ = e["message"].(string)
	}
	return out
}
