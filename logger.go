package huge

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
)

// Logger wraps slog.Logger with huge-specific context.
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

var noopLogger = &Logger{Logger: slog.New(slog.DiscardHandler)}

// NoopLogger returns a Logger that discards all log output.
func NoopLogger() *Logger {
	return noopLogger
}

// WithLength adds a length field to the logger.
func (l *Logger) WithLength(length int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("length", length),
	}
}

// WithConcurrency adds a concurrency field to the logger.
func (l *Logger) WithConcurrency(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("concurrency", n),
	}
}

// LogAllocation logs the allocation of an array.
func (l *Logger) LogAllocation(ctx context.Context, length, pages, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "allocation failed",
			"length", length,
			"size", humanize.IBytes(uint64(max(bytes, 0))),
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "array allocated",
		"length", length,
		"pages", pages,
		"size", humanize.IBytes(uint64(max(bytes, 0))),
	)
}

// LogRelease logs the release of an array's pages.
func (l *Logger) LogRelease(ctx context.Context, bytes int64) {
	l.DebugContext(ctx, "array released",
		"size", humanize.IBytes(uint64(max(bytes, 0))),
	)
}

// LogProgress logs how many elements of a parallel construction are done.
func (l *Logger) LogProgress(ctx context.Context, done, total int64) {
	l.DebugContext(ctx, "construction progress",
		"done", done,
		"total", total,
	)
}

// LogConstruction logs the end of a parallel construction.
func (l *Logger) LogConstruction(ctx context.Context, length int64, partitions int, duration time.Duration, terminated bool) {
	if terminated {
		l.WarnContext(ctx, "construction terminated early",
			"length", length,
			"partitions", partitions,
			"duration", duration,
		)
		return
	}
	l.InfoContext(ctx, "construction completed",
		"length", length,
		"partitions", partitions,
		"duration", duration,
	)
}

// LogResize logs the growth of a derived collection.
func (l *Logger) LogResize(ctx context.Context, collection string, from, to int64) {
	l.DebugContext(ctx, "collection resized",
		"collection", collection,
		"from", from,
		"to", to,
	)
}
