package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a JSON slog logger.  Records go to stdout unless file is set,
// in which case they are written to a rotating file.
func New(level, file string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var output io.Writer = os.Stdout
	if file != "" {
		output = RotatingFile(file)
	}
	return slog.New(slog.NewJSONHandler(output, opts))
}

// NewAudit returns the logger the event consumer writes one line per catalog
// event to.
func NewAudit(file string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(RotatingFile(file), &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// RotatingFile wraps path in a lumberjack writer.
func RotatingFile(path string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100,
		MaxAge:     30,
		MaxBackups: 3,
		Compress:   true,
		LocalTime:  true,
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
