// Package logger builds the process-wide slog logger: text on stdout or rotated JSON files.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/natefinch/lumberjack"
)

// Log level and backend names accepted in config.
const (
	LevelDebug   = "debug"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"

	TypeConsole = "console"
	TypeFile    = "file"
)

// Settings selects the backend and its rotation limits.
type Settings struct {
	Level      string
	Type       string
	FilePath   string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// New returns a logger for the given settings.
func New(s Settings) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(s.Level)}
	switch s.Type {
	case TypeConsole, "":
		return slog.New(slog.NewTextHandler(os.Stdout, opts)), nil
	case TypeFile:
		if s.FilePath == "" {
			return nil, fmt.Errorf("file path required for file logger")
		}
		return slog.New(slog.NewJSONHandler(newRotatingWriter(s), opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log type: %s", s.Type)
	}
}

func newRotatingWriter(s Settings) io.Writer {
	return &lumberjack.Logger{
		Filename:   s.FilePath,
		MaxSize:    s.MaxSize,
		MaxBackups: s.MaxBackups,
		MaxAge:     s.MaxAge,
		Compress:   true,
	}
}

// ParseLevel maps a config level name to slog; unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard is a logger that drops everything; handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
