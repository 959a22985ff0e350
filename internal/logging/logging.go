// Package logging builds the zerolog loggers used across codeaudit.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a human readable logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    true,
	}

	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// NewJSON returns a structured logger writing one JSON object per line.
func NewJSON(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Discard returns a logger that drops everything. Useful for tests.
func Discard() zerolog.Logger {
	return zerolog.Nop()
}

// LevelFromString converts debug, info, warn or error (any case) into a level.
// Unknown names yield info.
func LevelFromString(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// LevelFromVerbosity maps the CLI flags to a level:
// quiet disables logging, 0 is warn, 1 is info and 2 or more is debug.
func LevelFromVerbosity(verbosity int, quiet bool) zerolog.Level {
	if quiet {
		return zerolog.Disabled
	}

	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}
