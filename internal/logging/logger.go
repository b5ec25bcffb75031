// Package logging configures the process-wide zerolog logger.
//
// Library packages never log through the global logger directly; they take a
// zerolog.Logger option and default to zerolog.Nop(). Only cmd/ wires
// Logger() into them.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	Level string

	// Format is json or console.
	Format string

	// Output defaults to os.Stderr
	Output io.Writer
}

// DefaultConfig returns info-level JSON logging to stderr
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", Output: os.Stderr}
}

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	log = build(DefaultConfig(), zerolog.InfoLevel)
}

// Init reconfigures the global logger. It may be called more than once.
func Init(cfg Config) error {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	switch cfg.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}

	mu.Lock()
	log = build(cfg, level)
	mu.Unlock()
	return nil
}

func build(cfg Config, level zerolog.Level) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// Logger returns the configured global logger
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Component returns the global logger tagged with a component name
func Component(name string) zerolog.Logger {
	return Logger().With().Str("component", name).Logger()
}
