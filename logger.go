package localsearch

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with localsearch-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithIndexID adds an index id field to the logger.
func (l *Logger) WithIndexID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("index_id", id),
	}
}

// LogFind logs a search operation.
func (l *Logger) LogFind(ctx context.Context, maxResults uint32, found int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "find failed",
			"max_results", maxResults,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "find completed",
			"max_results", maxResults,
			"results", found,
		)
	}
}

// LogUpdate logs an add/update operation.
func (l *Logger) LogUpdate(ctx context.Context, count int, removed uint32, err error) {
	if err != nil {
		l.ErrorContext(ctx, "update failed",
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "update completed",
			"count", count,
			"removed", removed,
		)
	}
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(ctx context.Context, requested int, removed uint32, err error) {
	if err != nil {
		l.ErrorContext(ctx, "delete failed",
			"requested", requested,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "delete completed",
			"requested", requested,
			"removed", removed,
		)
	}
}

// LogClear logs a clear operation.
func (l *Logger) LogClear(ctx context.Context, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clear failed", "error", err)
	} else {
		l.InfoContext(ctx, "index cleared")
	}
}
