package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger struct {
	fd *os.File
}

func (l *Logger) Close() error {
	if l.fd != nil {
		if err := l.fd.Close(); err != nil {
			return fmt.Errorf("failed to close log-file: %w", err)
		}
	}

	return nil
}

// NewLogger выставляет slog по умолчанию. Без filepath пишет в stderr,
// stdout остается под вывод результата.
func NewLogger(service, version, level, filepath string) (*Logger, error) {
	var (
		logWriter io.Writer = os.Stderr
		result              = Logger{}
	)

	programLevel, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	if filepath != "" {
		const perm = 0600 //nolint:gofumpt

		fd, err := os.OpenFile(filepath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, perm)
		if err != nil {
			return nil, fmt.Errorf("failed to open log-file: %w", err)
		}

		logWriter, result.fd = fd, fd
	}

	slog.SetDefault(New(logWriter, service, version, programLevel))

	return &result, nil
}

// New логгер без побочных эффектов, удобно в тестах.
func New(w io.Writer, service, version string, level slog.Leveler) *slog.Logger {
	jsonHandler := slog.
		NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: false,
		}).
		WithAttrs([]slog.Attr{
			slog.String("service", service),
			slog.String("version", version),
		})

	return slog.New(cxtHandler{jsonHandler})
}

func parseLevel(level string) (*slog.LevelVar, error) {
	programLevel := new(slog.LevelVar)

	switch strings.ToLower(level) {
	case "error":
		programLevel.Set(slog.LevelError) // error
	case "warn":
		programLevel.Set(slog.LevelWarn) // error, warn
	case "info", "":
		programLevel.Set(slog.LevelInfo) // error, warn, info
	case "debug":
		programLevel.Set(slog.LevelDebug) // error, warn, info, debug
	default:
		return nil, fmt.Errorf("unknown log level: %s", level)
	}

	return programLevel, nil
}
