package commands

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/diogo/askbox/internal/config"
)

// parseZerologLevel maps a level name to zerolog. Unknown names are info.
func parseZerologLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "info":
		fallthrough
	default:
		return zerolog.InfoLevel
	}
}

// logLevel picks the flag over the config value
func logLevel(cfg config.Config) zerolog.Level {
	if logLevelFlag != "" {
		return parseZerologLevel(logLevelFlag)
	}
	return parseZerologLevel(cfg.LogLevel)
}

// newConsoleLogger builds a human-readable logger on w and installs it as
// the global logger
func newConsoleLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
	log.Logger = logger
	return logger
}

// newFileLogger logs JSON lines to path so a full-screen UI stays clean.
// The returned closer must be closed when the command ends.
func newFileLogger(path string, level zerolog.Level) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return zerolog.Nop(), nil, errors.Wrap(err, "create log dir")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nil, errors.Wrapf(err, "open log file %s", path)
	}
	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	log.Logger = logger
	return logger, f, nil
}
