// Package log wraps log/slog with a process-wide verbosity switch. The
// default level only surfaces warnings and errors; --verbose raises it to
// debug so per-record skips and retry detail become visible.
package log

import (
	"io"
	"log/slog"
	"os"
)

var (
	logger  *slog.Logger
	verbose bool
)

// Init configures the global logger. Verbose enables debug and info output;
// otherwise only warnings and errors are emitted.
func Init(v bool, w io.Writer) {
	verbose = v
	level := slog.LevelWarn
	if v {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Debug logs at debug level (verbose only).
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs at info level (verbose only).
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs at warn level (always visible).
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs at error level (always visible).
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

// Verbose reports whether verbose logging is enabled.
func Verbose() bool {
	return verbose
}

func init() {
	Init(false, os.Stderr)
}
