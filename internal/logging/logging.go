// Package logging builds the zerolog logger used by the engine and the
// example programs.
package logging

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/kumarlokesh/sysd/exercises/phone-forward/internal/config"
)

// New returns a logger writing to w at the configured level. The console
// format is meant for humans; json is one event per line.
func New(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	switch cfg.Format {
	case "json":
	case "console", "":
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	default:
		return zerolog.Nop(), fmt.Errorf("unsupported log format: %q", cfg.Format)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
