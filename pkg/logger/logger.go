package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates the service logger. Level comes from LOG_LEVEL; output
// is pretty console in development, JSON otherwise.
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var out zerolog.Logger
	if os.Getenv("ENV") == "development" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		out = zerolog.New(os.Stdout)
	}

	return out.Level(parseLevel(os.Getenv("LOG_LEVEL"))).
		With().
		Timestamp().
		Str("service", "blog-comment-api").
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
