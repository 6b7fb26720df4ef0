package hexpatch

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/hexpatch/cell"
)

// Logger wraps slog.Logger with hexpatch-specific context.
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

// WithCell adds a cell field to the logger (useful for tagging operations).
func (l *Logger) WithCell(id cell.ID) *Logger {
	return &Logger{
		Logger: l.Logger.With("cell", id),
	}
}

// WithRingDistance adds a ring_distance field to the logger.
func (l *Logger) WithRingDistance(distance int) *Logger {
	return &Logger{
		Logger: l.Logger.With("ring_distance", distance),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogBuild logs a dataset build.
func (l *Logger) LogBuild(ctx context.Context, ringDistance, cells, valid int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dataset build failed",
			"ring_distance", ringDistance,
			"cells", cells,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dataset build completed",
			"ring_distance", ringDistance,
			"cells", cells,
			"valid", valid,
			"excluded", cells-valid,
		)
	}
}

// LogExport logs a snapshot export.
func (l *Logger) LogExport(ctx context.Context, name string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot export failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot exported",
			"name", name,
			"count", count,
		)
	}
}

// LogSnapshotOpen logs a snapshot open.
func (l *Logger) LogSnapshotOpen(ctx context.Context, name string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot open failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot opened",
			"name", name,
			"count", count,
		)
	}
}
