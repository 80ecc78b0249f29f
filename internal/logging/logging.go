package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLogLevel names the environment variable that sets the global log level.
const EnvLogLevel = "COBSFRAME_LOG_LEVEL"

var configureOnce sync.Once

// Init installs a console logger tagged with app as the global zerolog
// logger.  Frames travel over stdout, so logs always go to stderr.
func Init(app string) zerolog.Logger {
	configureOnce.Do(func() {
		log.Logger = New(app, os.Stderr)
		zerolog.SetGlobalLevel(ParseLevel(os.Getenv(EnvLogLevel)))
	})
	return log.Logger
}

// New returns a console logger tagged with app that writes to out.
func New(app string, out io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Str("app", app).Logger()
}

// ParseLevel maps a level name to a zerolog level, falling back to info.
func ParseLevel(raw string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
