package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger installs the default slog logger. Console output goes through tint; when
// file is set, records are written as JSON to a rotating log file instead.
func InitLogger(level string, file string) {
	slog.SetDefault(slog.New(NewHandler(os.Stdout, level, file)))
}

func NewHandler(w io.Writer, level string, file string) slog.Handler {
	lvl := ParseLevel(level)

	if file != "" {
		if dir := filepath.Dir(file); dir != "." {
			_ = os.MkdirAll(dir, os.ModePerm)
		}
		rotating := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    32, // MB
			MaxBackups: 3,
			MaxAge:     14,
			Compress:   true,
		}
		return slog.NewJSONHandler(rotating, &slog.HandlerOptions{
			Level:     lvl,
			AddSource: true,
		})
	}

	return tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	})
}

func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
