// Package logview captures slog records in memory so a full-screen terminal
// UI can show them in a strip instead of writing to the tty it draws on.
package logview

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Entry is one captured log record, already flattened to text.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// Ring is a fixed-capacity ring of entries, safe for concurrent use.
type Ring struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	count   int
}

func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{entries: make([]Entry, capacity)}
}

func (r *Ring) Add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.next] = e
	r.next = (r.next + 1) % len(r.entries)
	if r.count < len(r.entries) {
		r.count++
	}
}

// Recent returns up to n entries, newest first. n <= 0 returns all of them.
func (r *Ring) Recent(n int) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}
	if n <= 0 || n > r.count {
		n = r.count
	}

	out := make([]Entry, n)
	for i := range out {
		out[i] = r.entries[(r.next-1-i+len(r.entries))%len(r.entries)]
	}
	return out
}

func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// Handler is a slog.Handler writing into a Ring.
type Handler struct {
	ring   *Ring
	level  slog.Leveler
	prefix string // pre-rendered attrs from WithAttrs
	group  string
}

var _ slog.Handler = (*Handler)(nil)

func NewHandler(ring *Ring, level slog.Leveler) *Handler {
	return &Handler{ring: ring, level: level}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	var sb strings.Builder
	sb.WriteString(record.Message)
	sb.WriteString(h.prefix)
	record.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, h.group, a)
		return true
	})

	h.ring.Add(Entry{Time: record.Time, Level: record.Level, Message: sb.String()})
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var sb strings.Builder
	sb.WriteString(h.prefix)
	for _, a := range attrs {
		writeAttr(&sb, h.group, a)
	}
	clone := *h
	clone.prefix = sb.String()
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = joinKey(h.group, name)
	return &clone
}

func writeAttr(sb *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		g := joinKey(group, a.Key)
		for _, sub := range a.Value.Group() {
			writeAttr(sb, g, sub)
		}
		return
	}
	fmt.Fprintf(sb, " %s=%v", joinKey(group, a.Key), a.Value)
}

func joinKey(group, key string) string {
	if group == "" {
		return key
	}
	if key == "" {
		return group
	}
	return group + "." + key
}

// Format renders an entry as a single display line.
func Format(e Entry) string {
	var level string
	switch {
	case e.Level >= slog.LevelError:
		level = "ERR"
	case e.Level >= slog.LevelWarn:
		level = "WRN"
	case e.Level >= slog.LevelInfo:
		level = "INF"
	default:
		level = "DBG"
	}
	return fmt.Sprintf("%s [%s] %s", e.Time.Format("15:04:05"), level, e.Message)
}
