// Package blog provides the process-wide structured logger.
package blog

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	once   sync.Once
	logger *slog.Logger
)

// Setup initializes the global logger. Invalid levels fall back to INFO.
func Setup(level string) {
	once.Do(func() {
		var l slog.Level
		switch strings.ToUpper(level) {
		case "DEBUG":
			l = slog.LevelDebug
		case "WARN":
			l = slog.LevelWarn
		case "ERROR":
			l = slog.LevelError
		default:
			l = slog.LevelInfo
		}

		handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l})
		logger = slog.New(handler)
		slog.SetDefault(logger)
	})
}

// Get returns the configured logger, initializing a default one if Setup
// has not been called yet.
func Get() *slog.Logger {
	if logger == nil {
		Setup("INFO")
	}
	return logger
}

// WithComponent returns a logger scoped to a package or subsystem name.
func WithComponent(name string) *slog.Logger {
	return Get().With(slog.String("component", name))
}

// WithInstruction returns a logger scoped to an instruction id, for use
// while the runtime is executing or scheduling that instruction.
func WithInstruction(id string) *slog.Logger {
	return Get().With(slog.String("instruction", id))
}

// WithRun returns a logger scoped to a single script run.
func WithRun(runID string) *slog.Logger {
	return Get().With(slog.String("run_id", runID))
}

// Info logs at INFO level on the default logger.
func Info(msg string, args ...any) { Get().Info(msg, args...) }

// Debug logs at DEBUG level on the default logger.
func Debug(msg string, args ...any) { Get().Debug(msg, args...) }

// Warn logs at WARN level on the default logger.
func Warn(msg string, args ...any) { Get().Warn(msg, args...) }

// Error logs at ERROR level on the default logger.
func Error(msg string, args ...any) { Get().Error(msg, args...) }
