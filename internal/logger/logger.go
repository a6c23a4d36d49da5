// Package logger provides structured logging functionality.
// It wraps the standard log/slog package for consistent logging across the tool.
//
// All helpers use structured logging with consistent field names (snake_case).
// Output goes to stderr so that query results printed to stdout stay clean.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the default logger instance.
var Logger *slog.Logger

func init() {
	Logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// SetLevel configures the logging level.
func SetLevel(level slog.Level) {
	Logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// SetOutput redirects log output to the given writer. Used by tests.
func SetOutput(w io.Writer, level slog.Level) {
	Logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// WithDataset returns a logger with dataset context.
func WithDataset(kind string, path string) *slog.Logger {
	return Logger.With("dataset", kind, "path", path)
}
