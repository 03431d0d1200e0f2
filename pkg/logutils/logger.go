package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/colonyops/chiclet/internal/core/logging"
)

// New builds the application logger at level (debug, info, warn, error,
// fatal). With a file, JSON lines are appended to it and the returned func
// closes it. Without one, logs go to stderr, in console format when stderr
// is a terminal.
func New(level string, file string) (zerolog.Logger, func(), error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, func() {}, err
	}

	if file == "" {
		var w io.Writer = os.Stderr
		if term.IsTerminal(int(os.Stderr.Fd())) {
			w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
		}
		return NewWithWriter(w, lvl), func() {}, nil
	}

	f, err := openLogFile(file)
	if err != nil {
		return zerolog.Logger{}, func() {}, err
	}
	return NewWithWriter(f, lvl), func() { _ = f.Close() }, nil
}

// NewWithWriter builds the logger used by New on an arbitrary writer. Events
// logged with a context carry its logging.Run fields.
func NewWithWriter(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(lvl).
		Hook(logging.ContextHook{}).
		With().
		Timestamp().
		Logger()
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
