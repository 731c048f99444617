package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger aliases the zerolog.Logger so packages outside infra can accept a
// logger without importing the third-party module directly.
type Logger = zerolog.Logger

// NewLogger constructs the service logger. Development builds log at debug
// level through the console writer; everything else emits JSON lines.
func NewLogger(appEnv string) Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", "render-api").
		Logger()

	if appEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return logger
}

// LoggerOrNop dereferences l, or returns a logger that drops everything.
func LoggerOrNop(l *Logger) Logger {
	if l != nil {
		return *l
	}
	return zerolog.New(io.Discard)
}
