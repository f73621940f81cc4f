package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

const (
	fileNamePrefix = "benchmark-beebs-"
	fileTimeLayout = "2006-01-02-1504"
)

// Options controls the console half of the sink. The file half always
// records debug level and above in text format.
type Options struct {
	Console io.Writer
	Level   slog.Level
	Format  string // "auto", "text" or "json"
}

// Sink owns the run's logger and its log file.
type Sink struct {
	Logger *slog.Logger

	path     string
	file     *os.File
	once     sync.Once
	closeErr error
}

// FileName returns the log file name for a run started at now.
func FileName(now time.Time) string {
	return fileNamePrefix + now.Format(fileTimeLayout) + ".log"
}

// Open creates <topDir>/logs/<FileName(now)> and returns a sink writing to
// it and to opts.Console. An existing file of the same name is appended to.
func Open(topDir string, now time.Time, opts Options) (*Sink, error) {
	dir := filepath.Join(topDir, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, FileName(now))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	handler := &teeHandler{handlers: []slog.Handler{
		newConsoleHandler(console, opts.Format, opts.Level),
		slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}}

	return &Sink{
		Logger: slog.New(handler),
		path:   path,
		file:   f,
	}, nil
}

// Path returns the log file's location.
func (s *Sink) Path() string { return s.path }

// Close flushes and closes the log file. It is safe to call more than once.
func (s *Sink) Close() error {
	s.once.Do(func() {
		if err := s.file.Sync(); err != nil {
			s.closeErr = err
		}
		if err := s.file.Close(); err != nil && s.closeErr == nil {
			s.closeErr = err
		}
	})
	return s.closeErr
}

// ParseLevel maps a level name to its slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", s)
	}
}

// newConsoleHandler picks text output for terminals and json otherwise when
// format is "auto".
func newConsoleHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "auto" || format == "" {
		format = "json"
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = "text"
		}
	}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
