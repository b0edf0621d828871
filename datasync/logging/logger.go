// Package logging holds the process-wide zerolog logger. It is silent until
// SetGlobalLogger is called.
package logging

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var Logger zerolog.Logger

func init() {
	SetGlobalLogger(zerolog.Nop())
}

func SetGlobalLogger(logger zerolog.Logger) {
	Logger = logger
	zerolog.DefaultContextLogger = &Logger
}

// Config selects level and encoding of a logger built by New.
type Config struct {
	Level  string `mapstructure:"level"`  // trace, debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// New builds a logger writing to w, stderr when w is nil.
func New(cfg Config, w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), errors.Wrapf(err, "log level %q", cfg.Level)
		}
		level = parsed
	}
	switch strings.ToLower(cfg.Format) {
	case "", "json":
	case "console", "text":
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	default:
		return zerolog.Nop(), errors.Errorf("unknown log format %q", cfg.Format)
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

func With() zerolog.Context { return Logger.With() }

func Err(err error) *zerolog.Event { return Logger.Err(err) }

func Debug() *zerolog.Event { return Logger.Debug() }

func Info() *zerolog.Event { return Logger.Info() }

func Warn() *zerolog.Event { return Logger.Warn() }

// Ctx returns the logger attached to ctx or the global one.
func Ctx(ctx context.Context) *zerolog.Logger { return zerolog.Ctx(ctx) }
