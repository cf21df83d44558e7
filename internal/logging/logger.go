// Package logging provides the structured logging used throughout the
// engine, built on log/slog the way the teacher's pkg/logging wraps it:
// a thin Logger around *slog.Logger with level configuration and a With
// fan-out for contextual fields (sbom_id, graph_id, component).
package logging

import (
	"log/slog"
	"os"
)

// Level mirrors slog's level constants under this package's own name, so
// callers configuring a Logger don't need to import log/slog directly.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger wraps a *slog.Logger. The zero value is not usable; construct one
// with New or Default.
type Logger struct {
	inner *slog.Logger
}

// Config controls how a Logger writes.
type Config struct {
	Level Level
}

// New builds a Logger writing JSON to stderr at the configured level.
func New(cfg Config) *Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level})
	return &Logger{inner: slog.New(h)}
}

// Default returns a Logger at Info level, stderr output — the same
// zero-configuration default the teacher's logging.Default() provides.
func Default() *Logger {
	return New(Config{Level: LevelInfo})
}

// With returns a Logger that attaches the given key/value pairs to every
// subsequent log call — used to fan out sbom_id/graph_id/component context
// without threading them through every call site individually.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// Slog returns the underlying *slog.Logger, for libraries (like otel
// bridges) that want one directly.
func (l *Logger) Slog() *slog.Logger { return l.inner }
