// Package logging configures structured logging with log/slog.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options selects the handler and minimum level.
//
//   - Quiet:   only WARN and ERROR messages
//   - Verbose: DEBUG and above
//   - otherwise Level, defaulting to INFO
//
// Quiet wins over Verbose.
type Options struct {
	Level   string
	Format  string // "text" or "json"
	Writer  io.Writer
	Verbose bool
	Quiet   bool
}

// Setup builds a logger from opts, installs it as the slog default and
// returns it. Output goes to stderr unless Writer is set.
func Setup(opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: opts.level()}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(w, hopts)
	} else {
		handler = slog.NewTextHandler(w, hopts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func (o Options) level() slog.Level {
	switch {
	case o.Quiet:
		return slog.LevelWarn
	case o.Verbose:
		return slog.LevelDebug
	}
	return ParseLevel(o.Level)
}

// ParseLevel maps a level name to a slog.Level, INFO when unknown.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
