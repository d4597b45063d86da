// Package logger configures the application's structured logging.
//
// It uses *ZeroLog* for application logs and provides the adapters
// needed to route PGX query traces through the same logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/emmanueletti/lightbnb/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// NewLogger builds the application logger from observability config.
//
// Production (or an explicit "json" format) writes JSON to stdout. Every
// other environment gets a human-friendly console writer on stderr.
func NewLogger(obs *config.ObservabilityConfig) zerolog.Logger {
	if obs == nil {
		obs = config.DefaultObservabilityConfig()
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var writer io.Writer = os.Stdout
	if !obs.IsProduction() && obs.Logging.Format == "console" {
		writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}

	return zerolog.New(writer).
		Level(ParseLevel(obs.GetLogLevel())).
		With().
		Timestamp().
		Str("service", obs.ServiceName).
		Str("environment", obs.Environment).
		Logger()
}

// ParseLevel maps a config level string onto a zerolog level.
// Unknown values fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
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

// NewPgxLogger returns a console logger dedicated to SQL tracing.
//
// SQL traces are noisy, so they are kept on their own writer with a
// "component" field to make them easy to filter.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
		FormatFieldValue: func(i any) string {
			if s, ok := i.(string); ok {
				// Collapse whitespace so multi-line SQL stays on one line.
				return strings.Join(strings.Fields(s), " ")
			}
			return fmt.Sprint(i)
		},
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("component", "database").
		Logger()
}

// GetPgxTraceLogLevel converts a zerolog level into the matching pgx
// tracelog level.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return tracelog.LogLevelError
	case zerolog.Disabled:
		return tracelog.LogLevelNone
	default:
		return tracelog.LogLevelInfo
	}
}
