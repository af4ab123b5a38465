package driver

import (
	"context"
	"log/slog"
)

// LogSink is the default Sink: it logs every call and never fails,
// standing in for real input hardware until a transport-specific backend
// is wired in. It satisfies the Non-goal against this codebase owning a
// real low-level keyboard driver while still giving the runtime something
// safe to drive end to end.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink returns a Sink that only logs.
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Down(_ context.Context, scanCode uint16) error {
	s.logger.Debug("key down", "scan_code", scanCode)
	return nil
}

func (s *LogSink) Up(_ context.Context, scanCode uint16) error {
	s.logger.Debug("key up", "scan_code", scanCode)
	return nil
}

func (s *LogSink) Focus(_ context.Context, windowTitle string) error {
	s.logger.Debug("focus window", "title", windowTitle)
	return nil
}
