// Package diag provides process diagnostics for log output. The bot
// annotates every log record with its current resident-set size so
// long scans over large guilds leave a memory trail in the logs.
package diag

import (
	"context"
	"log/slog"
	"math"
	"os"
	"sync"

	"github.com/shirou/gopsutil/v3/process"
)

var (
	procOnce sync.Once
	proc     *process.Process
)

// MemoryMB returns the current process resident-set size in megabytes.
// Introspection is best-effort: any failure returns 0 rather than an
// error, so callers can log the figure unconditionally.
func MemoryMB() float64 {
	procOnce.Do(func() {
		p, err := process.NewProcess(int32(os.Getpid()))
		if err != nil {
			return
		}
		proc = p
	})
	if proc == nil {
		return 0
	}

	info, err := proc.MemoryInfo()
	if err != nil || info == nil {
		return 0
	}
	return float64(info.RSS) / (1024 * 1024)
}

// memoryHandler decorates an slog.Handler, appending a mem_mb attribute
// to every record it handles.
type memoryHandler struct {
	inner slog.Handler
}

// NewMemoryHandler wraps inner so that every log record carries the
// process resident-set size (in MB, two decimals) as mem_mb.
func NewMemoryHandler(inner slog.Handler) slog.Handler {
	return &memoryHandler{inner: inner}
}

func (h *memoryHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *memoryHandler) Handle(ctx context.Context, r slog.Record) error {
	r = r.Clone()
	r.AddAttrs(slog.Float64("mem_mb", math.Round(MemoryMB()*100)/100))
	return h.inner.Handle(ctx, r)
}

func (h *memoryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &memoryHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *memoryHandler) WithGroup(name string) slog.Handler {
	return &memoryHandler{inner: h.inner.WithGroup(name)}
}
