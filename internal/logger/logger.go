// Package logger configures the process-wide slog logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	FormatText = "text"
	FormatJSON = "json"

	LevelNone = "none"
)

type Options struct {
	Level  string    // debug|info|warn|error|none
	Format string    // text|json
	Writer io.Writer // defaults to os.Stderr; logs never go to stdout
}

var globalLogger *slog.Logger

// ParseLevel maps a level name to a slog level. enabled is false for "none".
func ParseLevel(level string) (lvl slog.Level, enabled bool, err error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true, nil
	case "info":
		return slog.LevelInfo, true, nil
	case "warn":
		return slog.LevelWarn, true, nil
	case "error":
		return slog.LevelError, true, nil
	case LevelNone, "":
		return slog.LevelError, false, nil
	}
	return 0, false, fmt.Errorf("invalid log level: %s", level)
}

// Init builds a logger from opts and installs it as the slog default.
func Init(opts Options) (*slog.Logger, error) {
	level, enabled, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	handlerOptions := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch {
	case !enabled:
		handler = slog.DiscardHandler
	case opts.Format == FormatJSON:
		handler = slog.NewJSONHandler(w, handlerOptions)
	case opts.Format == FormatText || opts.Format == "":
		handler = slog.NewTextHandler(w, handlerOptions)
	default:
		return nil, fmt.Errorf("invalid log format: %s", opts.Format)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
	return globalLogger, nil
}

// GetLogger returns the logger installed by Init, or slog.Default.
func GetLogger() *slog.Logger {
	if globalLogger == nil {
		return slog.Default()
	}
	return globalLogger
}
