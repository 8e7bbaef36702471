// Package logging builds the slog logger shared by every diarypush command.
//
// Records always go to a text handler on stderr. When a log file is
// configured they are also appended to it as JSON lines with UTC timestamps,
// which is what the background service relies on.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	slogmulti "github.com/samber/slog-multi"
)

type Options struct {
	Verbose bool

	// File is an optional path for the JSON log
	File string

	// Stderr defaults to os.Stderr
	Stderr io.Writer
}

// New creates the logger. The returned close function must be called to
// flush and release the log file; it is safe to call when no file is open.
func New(opts Options) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}),
	}

	closeFn := func() error { return nil }

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}

		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level:       level,
			AddSource:   opts.Verbose,
			ReplaceAttr: utcTime,
		}))

		closeFn = func() error {
			var cerr error
			if err := f.Sync(); err != nil {
				cerr = errors.Join(cerr, err)
			}

			if err := f.Close(); err != nil {
				cerr = errors.Join(cerr, err)
			}

			return cerr
		}
	}

	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func utcTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		t := a.Value.Time().UTC()
		a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
	}

	return a
}
