// Package logging configures the zerolog logger carried through the context.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Log levels - aliases for zerolog levels
const (
	ErrorLevel    = zerolog.ErrorLevel
	WarnLevel     = zerolog.WarnLevel
	InfoLevel     = zerolog.InfoLevel
	DebugLevel    = zerolog.DebugLevel
	DisabledLevel = zerolog.Disabled
)

// Config defines the configuration for logger creation
type Config struct {
	// Writer receives log lines. Defaults to a console writer on stderr.
	Writer io.Writer
	Level  zerolog.Level
	// JSON disables the console formatting of the default writer.
	JSON bool
}

// New returns a context carrying a logger built from config.
func New(ctx context.Context, config Config) context.Context {
	writer := config.Writer
	if writer == nil {
		if config.JSON {
			writer = os.Stderr
		} else {
			writer = ConsoleWriter(os.Stderr)
		}
	}

	logger := zerolog.New(writer).With().
		Timestamp().
		Logger().
		Level(config.Level)

	return logger.WithContext(ctx)
}

// ConsoleWriter formats log lines for a CI console: no colors, no timestamps.
func ConsoleWriter(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:          out,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
}

// Get retrieves the logger from the provided context
// Returns the logger associated with the context, or a disabled logger if none exists
func Get(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// ParseVerbosity maps the CLI verbosity names onto log levels.
func ParseVerbosity(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quiet":
		return ErrorLevel, nil
	case "", "info":
		return InfoLevel, nil
	case "debug":
		return DebugLevel, nil
	default:
		return InfoLevel, fmt.Errorf("invalid verbosity %q: expected quiet, info, or debug", s)
	}
}
