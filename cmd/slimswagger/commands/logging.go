package commands

import (
	"io"
	"log/slog"
	"strings"

	"github.com/mikejonesguy/SlimSwagger/parser"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log rotation defaults for --log-file.
const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// LogOptions selects where CLI diagnostics go and how verbose they are.
type LogOptions struct {
	// File routes logs to a size-rotated file instead of Stderr
	File string
	// Verbose enables debug output
	Verbose bool
	// Quiet only lets errors through
	Quiet bool
}

// level maps the verbosity flags to a slog level. Warnings are shown by
// default; --verbose wins over --quiet.
func (o LogOptions) level() slog.Level {
	switch {
	case o.Verbose:
		return slog.LevelDebug
	case o.Quiet:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// NewLogger builds the logger used by a command. Logs are written as text to
// stderr unless opts.File is set. The returned function releases the log
// file and must be called when the command finishes.
func NewLogger(stderr io.Writer, opts LogOptions) (*slog.Logger, func()) {
	w := stderr
	closeFn := func() {}

	if strings.TrimSpace(opts.File) != "" {
		logWriter := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
		}
		w = logWriter
		closeFn = func() { _ = logWriter.Close() }
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: opts.level()})
	return slog.New(handler), closeFn
}

// libraryLogger adapts a slog logger to the parser.Logger interface used by
// the library packages.
func libraryLogger(logger *slog.Logger) parser.Logger {
	return parser.NewSlogAdapter(logger)
}
