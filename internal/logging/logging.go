// Package logging builds the zerolog logger used for diagnostics.
// Command output does not go through here; see package ui.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// New returns a console logger on w at the named level ("warn" if empty).
func New(w io.Writer, level string, noColor bool) (zerolog.Logger, error) {
	lvl := zerolog.WarnLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), err
		}
		lvl = parsed
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: noColor}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// WithSession tags every line of log with a fresh session id.
func WithSession(log zerolog.Logger) zerolog.Logger {
	return log.With().Str("session", uuid.NewString()).Logger()
}
