// Package logging builds the slog logger used by the devfs command.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jmgilman/devaccess/config"
	perrors "github.com/jmgilman/devaccess/errors"
)

// ParseLevel parses a string log level into a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// New creates a logger for cfg. The returned close function releases the
// log file, if any, and must be called when logging is done.
func New(cfg config.LogConfig) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, perrors.Wrap(err, perrors.CodeInvalidConfig, "cannot configure logging")
	}

	w, closeFn, err := output(cfg.Output)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(handler(w, cfg.Format, level)), closeFn, nil
}

// NewWriter creates a logger writing to w.
func NewWriter(w io.Writer, format string, level slog.Level) *slog.Logger {
	return slog.New(handler(w, format, level))
}

func handler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func output(name string) (io.Writer, func() error, error) {
	nop := func() error { return nil }
	switch name {
	case "", "stderr":
		return os.Stderr, nop, nil
	case "stdout":
		return os.Stdout, nop, nil
	}

	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, perrors.Wrapf(err, perrors.CodeInvalidConfig, "cannot open log file %s", name)
	}
	return f, f.Close, nil
}
