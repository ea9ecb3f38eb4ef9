package utils

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogConfig captures options for configuring the process logger.
type LogConfig struct {
	Level  string    // "debug", "info", ... ; falls back to $GOGEO_LOG_LEVEL, then info
	Format string    // "console" or "json"
	Output io.Writer // defaults to os.Stderr
}

var (
	logMu sync.RWMutex
	base  = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// ConfigureLogger replaces the process logger. Unknown levels leave the
// level at info.
func ConfigureLogger(cfg LogConfig) {
	level := zerolog.InfoLevel
	name := cfg.Level
	if name == "" {
		name = os.Getenv("GOGEO_LOG_LEVEL")
	}
	if name != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(name)); err == nil {
			level = parsed
		}
	}
	zerolog.TimeFieldFormat = time.RFC3339

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}
	if cfg.Format != "json" {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.Kitchen, NoColor: true}
	}
	writer = zerolog.SyncWriter(writer)

	logMu.Lock()
	defer logMu.Unlock()
	base = zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// Logger returns a child logger annotated with the given component name.
func Logger(component string) zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return base.With().Str("component", component).Logger()
}
