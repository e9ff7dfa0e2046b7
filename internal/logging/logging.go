package logging

import (
	"io"
	"log/slog"
	"os"
)

var (
	// Logger is the global structured logger
	Logger *slog.Logger

	// Verbose reports whether debug logging is enabled
	Verbose bool

	level = new(slog.LevelVar)
)

// Options controls Setup.
type Options struct {
	// Verbose enables debug records.
	Verbose bool
	// Quiet keeps only warnings and errors. Verbose wins over Quiet.
	Quiet bool
	// JSON switches to one JSON object per record.
	JSON bool
	// Writer defaults to stderr.
	Writer io.Writer
}

func init() {
	Setup(Options{})
}

// Setup replaces the global logger.
func Setup(opts Options) {
	Verbose = opts.Verbose

	switch {
	case opts.Verbose:
		level.Set(slog.LevelDebug)
	case opts.Quiet:
		level.Set(slog.LevelWarn)
	default:
		level.Set(slog.LevelInfo)
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if opts.JSON {
		Logger = slog.New(slog.NewJSONHandler(w, handlerOpts))
	} else {
		Logger = slog.New(slog.NewTextHandler(w, handlerOpts))
	}
}

// Level returns the minimum level currently logged.
func Level() slog.Level {
	return level.Level()
}

// Component returns the global logger tagged with a component name.
// Packages that accept an optional logger fall back to it.
func Component(name string) *slog.Logger {
	return Logger.With("component", name)
}
