// Package logger provides structured logging for docchat.
// Logs go to stderr so they never interleave with the terminal UI.
package logger

import (
	"io"
	"log/slog"
	"os"
)

var log = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Init configures the package logger. Debug enables source locations and
// debug-level output.
func Init(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level, AddSource: debug}
	log = slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// SetOutput redirects log output. Useful for tests.
func SetOutput(w io.Writer) {
	log = slog.New(slog.NewTextHandler(w, nil))
}

func Debug(msg string, args ...any) { log.Debug(msg, args...) }

func Info(msg string, args ...any) { log.Info(msg, args...) }

func Warn(msg string, args ...any) { log.Warn(msg, args...) }

func Error(msg string, args ...any) { log.Error(msg, args...) }
