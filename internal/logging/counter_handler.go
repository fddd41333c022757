package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// Counter wraps a handler and counts the warning-or-worse records that pass
// through it, including records logged via derived loggers. The converters
// report per-file warning totals to the run log without the components
// themselves knowing about it.
type Counter struct {
	inner    slog.Handler
	warnings *atomic.Int64
}

// NewCounter returns a logger that forwards to base and the Counter tracking
// its records.
func NewCounter(base *slog.Logger) (*slog.Logger, *Counter) {
	counter := &Counter{inner: base.Handler(), warnings: new(atomic.Int64)}
	return slog.New(counter), counter
}

// Warnings returns the number of warning-or-worse records seen so far.
func (c *Counter) Warnings() int64 { return c.warnings.Load() }

func (c *Counter) Enabled(ctx context.Context, level slog.Level) bool {
	// Warnings are counted even when the sink filters them out.
	return level >= slog.LevelWarn || c.inner.Enabled(ctx, level)
}

func (c *Counter) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= slog.LevelWarn {
		c.warnings.Add(1)
	}
	if !c.inner.Enabled(ctx, record.Level) {
		return nil
	}
	return c.inner.Handle(ctx, record)
}

func (c *Counter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Counter{inner: c.inner.WithAttrs(attrs), warnings: c.warnings}
}

func (c *Counter) WithGroup(name string) slog.Handler {
	return &Counter{inner: c.inner.WithGroup(name), warnings: c.warnings}
}
