package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_LogDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(Options{Level: slog.LevelDebug, LogDir: dir}))
	Debug("hello", "k", 1)

	data, err := os.ReadFile(logFileName(dir, time.Now()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestCleanOldLogs(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	old := filepath.Join(dir, "memctl-2024-01-01.log")
	recent := filepath.Join(dir, "memctl-2024-02-25.log")
	other := filepath.Join(dir, "notes-2020-01-01.log")
	for _, p := range []string{old, recent, other} {
		require.NoError(t, os.WriteFile(p, nil, 0644))
	}

	cleanOldLogs(dir, now)

	assert.NoFileExists(t, old)
	assert.FileExists(t, recent)
	assert.FileExists(t, other)
}
