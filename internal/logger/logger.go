package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var (
	defaultLogger zerolog.Logger
	initialized   bool
)

// Init initializes the global logger. When json is false a human-readable
// console writer is used instead of raw JSON lines.
func Init(level string, json bool) {
	zerolog.TimeFieldFormat = time.RFC3339

	var l zerolog.Logger
	if json {
		l = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		l = zerolog.New(cw).With().Timestamp().Logger()
	}

	defaultLogger = l.Level(parseLevel(level))
	initialized = true
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the default logger
func Get() zerolog.Logger {
	if !initialized {
		Init("info", false)
	}
	return defaultLogger
}

// Info logs at info level with alternating key/value args
func Info(msg string, args ...any) {
	l := Get()
	l.Info().Fields(args).Msg(msg)
}

// Debug logs at debug level
func Debug(msg string, args ...any) {
	l := Get()
	l.Debug().Fields(args).Msg(msg)
}

// Warn logs at warn level
func Warn(msg string, args ...any) {
	l := Get()
	l.Warn().Fields(args).Msg(msg)
}

// Error logs at error level
func Error(msg string, args ...any) {
	l := Get()
	l.Error().Fields(args).Msg(msg)
}

// Fatal logs at error level and exits
func Fatal(msg string, args ...any) {
	l := Get()
	l.Error().Fields(args).Msg(msg)
	os.Exit(1)
}

// With returns a logger with the given attributes
func With(args ...any) zerolog.Logger {
	return Get().With().Fields(args).Logger()
}
