package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger is the default Logger implementation, backed by zerolog.
type ZerologLogger struct {
	l zerolog.Logger
}

// New builds a console-oriented logger. Outside production the level is
// lowered to Debug and output is colorized.
func New(environment string) *ZerologLogger {
	return NewWithOutput(environment, os.Stderr)
}

// NewWithOutput is New with an explicit sink, mainly for tests.
func NewWithOutput(environment string, out io.Writer) *ZerologLogger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    environment == "production",
	}

	level := zerolog.DebugLevel
	if environment == "production" {
		level = zerolog.InfoLevel
	}

	l := zerolog.New(output).Level(level).With().
		Timestamp().
		Str("env", environment).
		Logger()

	return &ZerologLogger{l: l}
}

// Nop returns a logger that discards everything. Useful in tests.
func Nop() Logger {
	return &ZerologLogger{l: zerolog.Nop()}
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.l.Debug().Fields(args).Msg(msg)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.l.Info().Fields(args).Msg(msg)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.l.Warn().Fields(args).Msg(msg)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.l.Error().Fields(args).Msg(msg)
}

func (z *ZerologLogger) With(args ...any) Logger {
	return &ZerologLogger{l: z.l.With().Fields(args).Logger()}
}
