package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger configures the global logger: "json" format writes
// structured records with a timestamp hook, anything else gets the
// console writer on stderr
func SetupLogger(levelStr, format string) {
	zerolog.MessageFieldName = "message"
	zerolog.LevelFieldName = "level"

	if format == "json" {
		SetupJSONLogger(levelStr, os.Stderr)
		return
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(GetLogLevelOrDebug(levelStr)).
		With().
		Timestamp().
		Logger()
}

// SetupJSONLogger configures the global logger for structured output to w
func SetupJSONLogger(levelStr string, w io.Writer) {
	var tsHook timestampHook
	log.Logger = zerolog.New(w).
		Hook(&tsHook).
		Level(GetLogLevelOrDebug(levelStr))
}

// GetLogLevelOrDebug parses a log level name, defaulting to debug when
// the name is unknown
func GetLogLevelOrDebug(levelStr string) zerolog.Level {
	levelStr = strings.ToLower(levelStr)
	if levelStr == "warning" {
		levelStr = "warn"
	}

	var level zerolog.Level

	err := level.UnmarshalText([]byte(levelStr))
	if err == nil {
		return level
	}

	log.Warn().Msgf("Unknown log level '%s', defaulting to debug", levelStr)
	return zerolog.DebugLevel
}

type timestampHook struct{}

func (h *timestampHook) Run(e *zerolog.Event, l zerolog.Level, msg string) {
	e.Str("time", time.Now().Format(time.RFC3339))
}
