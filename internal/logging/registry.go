// Package logging hands out one slog.Logger per alert type. Each logger
// writes to stdout and to its own file under the registry directory.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

type Registry struct {
	dir     string
	console io.Writer
	level   slog.Level

	mu      sync.Mutex
	loggers map[string]*slog.Logger
	files   []*os.File
}

// NewRegistry creates a registry rooted at dir. An empty dir disables the
// log files and keeps console output only.
func NewRegistry(dir string, console io.Writer) *Registry {
	if console == nil {
		console = os.Stdout
	}
	return &Registry{
		dir:     dir,
		console: console,
		level:   slog.LevelInfo,
		loggers: make(map[string]*slog.Logger),
	}
}

// Logger returns the logger for alertType, creating it on first use. If the
// log file cannot be opened the logger falls back to console output.
func (r *Registry) Logger(alertType string) *slog.Logger {
	r.mu.Lock()
	defer r.mu.Unlock()

	if logger, ok := r.loggers[alertType]; ok {
		return logger
	}

	out := r.console
	var fileErr error
	if r.dir != "" {
		f, err := r.open(alertType)
		if err != nil {
			fileErr = err
		} else {
			r.files = append(r.files, f)
			out = io.MultiWriter(r.console, f)
		}
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: r.level})).
		With("logger", alertType+"_logger")
	if fileErr != nil {
		logger.Warn("Log file unavailable, using console only", "error", fileErr)
	}

	r.loggers[alertType] = logger
	return logger
}

func (r *Registry) open(alertType string) (*os.File, error) {
	dir := filepath.Join(r.dir, alertType)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	path := filepath.Join(dir, alertType+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// Close closes every log file opened by the registry.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, f := range r.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.files = nil
	r.loggers = make(map[string]*slog.Logger)
	return errors.Join(errs...)
}
