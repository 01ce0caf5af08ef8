package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type Logger struct {
	zl zerolog.Logger
}

func New(level string) *Logger {
	var out io.Writer = os.Stdout
	if os.Getenv("ENV") != "production" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	lvl := zerolog.InfoLevel
	switch level {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn", "warning":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}

	return &Logger{
		zl: zerolog.New(out).Level(lvl).With().Timestamp().Logger(),
	}
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.zl.Info().Msgf(msg, args...)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.zl.Debug().Msgf(msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.zl.Warn().Msgf(msg, args...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.zl.Error().Msgf(msg, args...)
}

func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.zl.Fatal().Msgf(msg, args...)
}
