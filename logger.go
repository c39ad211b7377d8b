package qsched

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with scheduler-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithScheduleID adds a schedule_id field to the logger.
func (l *Logger) WithScheduleID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("schedule_id", id),
	}
}

// WithBackend adds a backend field to the logger.
func (l *Logger) WithBackend(backend string) *Logger {
	return &Logger{
		Logger: l.Logger.With("backend", backend),
	}
}

// LogFormulation logs a QUBO formulation.
func (l *Logger) LogFormulation(ctx context.Context, variables, terms int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "formulation failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "formulation completed",
			"variables", variables,
			"terms", terms,
		)
	}
}

// LogSolve logs a solve run.
func (l *Logger) LogSolve(ctx context.Context, backend string, assignments int, objective float64, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "solve failed",
			"backend", backend,
			"elapsed", elapsed,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "solve completed",
			"backend", backend,
			"assignments", assignments,
			"objective", objective,
			"elapsed", elapsed,
		)
	}
}

// LogArchive logs a run-record archival submission.
func (l *Logger) LogArchive(ctx context.Context, runID string, err error) {
	if err != nil {
		l.WarnContext(ctx, "run archival submission failed",
			"run_id", runID,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "run archival submitted",
			"run_id", runID,
		)
	}
}
