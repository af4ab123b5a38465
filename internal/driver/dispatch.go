package driver

import (
	"context"
	"log/slog"
	"time"

	"github.com/beanscript-lang/beanscript/internal/events"
)

// DefaultCallTimeout bounds a single Down/Up/Focus call. The real
// transport is synchronous and expected to return almost instantly; a call
// that hangs past this is treated as a transport failure.
const DefaultCallTimeout = 2 * time.Second

// SupervisedSink wraps a Sink with a per-call timeout and reports failures
// as non-fatal events instead of propagating them up through the runtime
// loop, per the driver errors being "non-fatal, reported via status
// channel" rule.
type SupervisedSink struct {
	inner   Sink
	events  *events.Hub
	logger  *slog.Logger
	timeout time.Duration
}

// NewSupervisedSink wraps inner. A nil hub or logger is replaced with an
// inert default so callers in tests can omit them.
func NewSupervisedSink(inner Sink, hub *events.Hub, logger *slog.Logger) *SupervisedSink {
	if hub == nil {
		hub = events.NewHub(64)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SupervisedSink{inner: inner, events: hub, logger: logger, timeout: DefaultCallTimeout}
}

func (s *SupervisedSink) Down(ctx context.Context, scanCode uint16) error {
	return s.call(ctx, "down", func(ctx context.Context) error { return s.inner.Down(ctx, scanCode) })
}

func (s *SupervisedSink) Up(ctx context.Context, scanCode uint16) error {
	return s.call(ctx, "up", func(ctx context.Context) error { return s.inner.Up(ctx, scanCode) })
}

func (s *SupervisedSink) Focus(ctx context.Context, windowTitle string) error {
	return s.call(ctx, "focus", func(ctx context.Context) error { return s.inner.Focus(ctx, windowTitle) })
}

func (s *SupervisedSink) call(ctx context.Context, op string, fn func(context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := fn(callCtx)
	if err != nil {
		s.logger.Warn("driver call failed", "op", op, "error", err)
		s.events.Publish("driver.error", map[string]any{
			"op":    op,
			"error": err.Error(),
		})
	}
	return err
}
