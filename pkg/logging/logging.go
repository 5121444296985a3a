// Package logging configures the process-wide slog default logger for
// the zenctl CLI.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Options controls handler selection and verbosity.
type Options struct {
	// Debug forces level debug regardless of LOG_LEVEL.
	Debug bool

	// JSON selects the JSON handler instead of the text handler.
	JSON bool
}

// Setup installs the default slog logger. Level resolution order:
// Debug option, then the LOG_LEVEL environment variable (debug, info,
// warn, error), then info.
func Setup(opts Options) {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	} else if env := os.Getenv("LOG_LEVEL"); env != "" {
		switch strings.ToLower(env) {
		case "debug":
			level = slog.LevelDebug
		case "warn", "warning":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	hopts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(os.Stderr, hopts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, hopts)
	}
	slog.SetDefault(slog.New(handler))
}
