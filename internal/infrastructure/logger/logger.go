// Package logger constructs zerolog loggers from level and format settings.
// Loggers are plain values injected into the components that log; there is no
// package-level singleton.
package logger

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to stdout in the given format ("console" or
// "json") at the given level.
func New(level, format string) (zerolog.Logger, error) {
	return NewWithWriter(level, format, os.Stdout)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(level, format string, out io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, err
	}

	switch strings.ToLower(format) {
	case "json":
	case "console":
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	default:
		return zerolog.Logger{}, errors.New("unsupported log format")
	}

	return zerolog.New(out).With().Timestamp().Logger().Level(lvl), nil
}
