package alloc

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Runtime allocation logging - controlled by MEMKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("MEMKIT_LOG_ALLOC") != ""

var pkgLogger atomic.Pointer[slog.Logger]

func init() {
	if logAlloc {
		SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		return
	}
	SetLogger(nil)
}

// SetLogger replaces the package logger. A nil logger discards all output.
//
// Log records are built on the Go heap, never from a Provider, so logging is
// safe from inside allocator code paths.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	pkgLogger.Store(l)
}

func logger() *slog.Logger {
	return pkgLogger.Load()
}
