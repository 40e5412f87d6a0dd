package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	logDir      = "logs"
	logFileName = "viewer.log"
)

// setupLogging routes log output to logs/viewer.log when debug is set and
// discards it otherwise; the terminal belongs to the screen. The returned
// file is nil when logging is off.
func setupLogging(debug bool) (*os.File, *slog.Logger) {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	if !debug {
		return nil, discard
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "can't create log dir: %v\n", err)
		return nil, discard
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "can't open log file: %v\n", err)
		return nil, discard
	}
	return f, slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
