package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const maxLogSize = 10 * 1024 * 1024

// setupLogging opens path for structured logs; an empty path discards them
// The terminal owns stdout, so logs never go there
// A file over maxLogSize is rotated to a timestamped sibling first
func setupLogging(path string, level slog.Level) (*slog.Logger, *os.File) {
	if path == "" {
		return slog.New(slog.DiscardHandler), nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "log directory: %v\n", err)
			return slog.New(slog.DiscardHandler), nil
		}
	}
	rotateLog(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log: %v\n", err)
		return slog.New(slog.DiscardHandler), nil
	}
	return newLogger(f, level), f
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func rotateLog(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return
	}
	ext := filepath.Ext(path)
	base := path[:len(path)-len(ext)]
	rotated := fmt.Sprintf("%s-%s%s", base, time.Now().Format("20060102-150405"), ext)
	_ = os.Rename(path, rotated)
}
