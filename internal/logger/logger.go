// Package logger provides the worker's two output channels: structured
// slog records on stderr for operators' log collectors, and optional
// progress lines on stdout for humans watching a run. Progress output is
// gated by the logging.show_progress config switch.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a config level string to a slog level. Config
// validation restricts the value to debug/info/warn/error; anything else
// falls back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger wraps slog with level control and progress output.
type Logger struct {
	slogger     *slog.Logger
	level       *slog.LevelVar
	progress    bool
	progressOut io.Writer
}

// NewLogger creates a logger at the given level with progress output
// disabled.
func NewLogger(level string) *Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(ParseLevel(level))

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})

	return &Logger{
		slogger:     slog.New(handler),
		level:       lvl,
		progressOut: os.Stdout,
	}
}

// EnableProgress turns on progress output.
func (l *Logger) EnableProgress() {
	l.progress = true
}

// Progressf prints one progress line to stdout when progress output is
// enabled. Structured log records are unaffected either way.
func (l *Logger) Progressf(format string, args ...any) {
	if !l.progress {
		return
	}

	fmt.Fprintf(l.progressOut, format+"\n", args...)
}

// Info logs an info level message.
func (l *Logger) Info(msg string, args ...any) {
	l.slogger.Info(msg, args...)
}

// Error logs an error level message.
func (l *Logger) Error(msg string, args ...any) {
	l.slogger.Error(msg, args...)
}

// Debug logs a debug level message.
func (l *Logger) Debug(msg string, args ...any) {
	l.slogger.Debug(msg, args...)
}

// Warn logs a warning level message.
func (l *Logger) Warn(msg string, args ...any) {
	l.slogger.Warn(msg, args...)
}

// With creates a child logger with the given attributes. The child
// shares the parent's level and progress settings.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slogger:     l.slogger.With(args...),
		level:       l.level,
		progress:    l.progress,
		progressOut: l.progressOut,
	}
}

// Log logs a message with the given level and attributes.
func (l *Logger) Log(ctx context.Context, level slog.Level, msg string, args ...any) {
	l.slogger.Log(ctx, level, msg, args...)
}
