package mng

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with build-specific convenience methods.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler. If handler is nil,
// a text handler writing to stderr at info level is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs at level.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that outputs human-readable text logs at
// level.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable
	})
	return &Logger{Logger: slog.New(handler)}
}

// WithAttempt adds an exponential-search attempt number to the logger.
func (l *Logger) WithAttempt(attempt int) *Logger {
	return &Logger{Logger: l.Logger.With("attempt", attempt)}
}

// LogMatrixBuild logs the completion of a metric preprocessing stage.
func (l *Logger) LogMatrixBuild(stage string, n int, dur float64, err error) {
	if err != nil {
		l.Error("matrix build failed", "stage", stage, "n", n, "error", err)
		return
	}
	l.Debug("matrix build completed", "stage", stage, "n", n, "seconds", dur)
}

// LogAttempt logs the outcome of one exponential-search degree-budget
// attempt.
func (l *Logger) LogAttempt(attempt int, targetDeg int, success bool) {
	if success {
		l.Info("degree budget attempt succeeded", "attempt", attempt, "target_degree", targetDeg)
	} else {
		l.Debug("degree budget attempt exhausted", "attempt", attempt, "target_degree", targetDeg)
	}
}

// LogBuildComplete logs the final outcome of a Build call.
func (l *Logger) LogBuildComplete(n int, maxOutDegree int, avgOutDegree float64, doublings int, dur float64, err error) {
	if err != nil {
		l.Error("graph build failed", "n", n, "error", err)
		return
	}
	l.Info("graph build completed",
		"n", n,
		"max_out_degree", maxOutDegree,
		"avg_out_degree", avgOutDegree,
		"budget_doublings", doublings,
		"seconds", dur,
	)
}
