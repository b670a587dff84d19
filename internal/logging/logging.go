// Package logging sets up zerolog for a program that owns the terminal:
// log lines go to a file, never to stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Discard is the log file name that turns logging off.
const Discard = "-"

// ParseLevel maps a config level name to a zerolog level. Unknown names fall back to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

// Setup opens path for appending and installs a logger writing to it as the
// global zerolog logger. The returned closer closes the file.
func Setup(level, path string) (zerolog.Logger, io.Closer, error) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if path == "" || path == Discard {
		logger := zerolog.Nop()
		log.Logger = logger
		return logger, io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("error creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("error opening log file: %w", err)
	}

	logger := New(f)
	log.Logger = logger
	return logger, f, nil
}

// New builds the application logger on w.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Str("app", "color-tango").Logger()
}
