// Package logger holds memctl's process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the global logger instance. It discards all output until Init runs.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

const (
	logPrefix     = "memctl-"
	logSuffix     = ".log"
	retentionDays = 30
)

// Options configures the logger initialization.
type Options struct {
	Level  slog.Level // Minimum log level
	LogDir string     // If set, JSON logs go to a daily file here; otherwise text to stderr
}

// Init configures logging. Call before any log calls.
func Init(opts Options) error {
	if opts.LogDir == "" {
		L = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: opts.Level}))
		return nil
	}

	if err := os.MkdirAll(opts.LogDir, 0755); err != nil {
		return err
	}

	// Clean up old logs (best-effort, ignore errors)
	cleanOldLogs(opts.LogDir, time.Now())

	f, err := os.OpenFile(logFileName(opts.LogDir, time.Now()), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level}))
	return nil
}

func logFileName(dir string, now time.Time) string {
	return filepath.Join(dir, logPrefix+now.Format("2006-01-02")+logSuffix)
}

// cleanOldLogs removes log files older than retentionDays.
func cleanOldLogs(logDir string, now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}

		// memctl-2024-01-05.log
		dateStr := strings.TrimPrefix(strings.TrimSuffix(name, logSuffix), logPrefix)
		logDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		if logDate.Before(cutoff) {
			os.Remove(filepath.Join(logDir, name))
		}
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
