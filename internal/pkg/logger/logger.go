package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the application logger. Pretty output is for local development;
// production gets structured JSON on stderr.
func New(level string, pretty bool) (zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.TimeFieldFormat = time.RFC3339

	var log zerolog.Logger
	if pretty {
		log = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
		})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(parsed).With().Timestamp().Logger(), nil
}
