// Package logging builds the process slog logger: JSON lines on the console,
// optionally teed into a size-rotated log file.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pthm-cable/sky/config"
)

// Setup creates a JSON logger writing to console and, when path is set, to a
// rotating file. The returned closer releases the file; it is never nil.
func Setup(cfg config.LogConfig, path string, console io.Writer) (*slog.Logger, io.Closer) {
	var writers []io.Writer
	if console != nil {
		writers = append(writers, console)
	}

	var closer io.Closer = nopCloser{}
	if path != "" {
		file := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		writers = append(writers, file)
		closer = file
	}

	var w io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(cfg.Level)})
	return slog.New(handler), closer
}

// ParseLevel converts a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
