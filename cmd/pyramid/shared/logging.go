package shared

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger configures charmbracelet/log with timestamps on stderr
func SetupLogger(level string) (*log.Logger, error) {
	return NewLogger(os.Stderr, level)
}

// NewLogger builds a logger writing to w at the named level
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}

// SetupFileLogger logs to a file, for front-ends that own the terminal.
// The returned close function flushes and closes the file.
func SetupFileLogger(path, level string) (*log.Logger, func() error, error) {
	if path == "" {
		logger, err := NewLogger(io.Discard, level)
		return logger, func() error { return nil }, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger, err := NewLogger(f, level)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	logger.SetFormatter(log.LogfmtFormatter)
	logger.SetTimeFormat(time.RFC3339)
	return logger, f.Close, nil
}
