package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/alloc"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "memctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfig_Resolves(t *testing.T) {
	s, err := DefaultConfig().Resolve()
	require.NoError(t, err)

	assert.Equal(t, alloc.ProfileFixedSizeBlock, s.Profile)
	assert.Equal(t, alloc.DefaultFactoryConfig(), s.Factory)
	assert.Equal(t, 4, s.Workers)
	assert.Equal(t, 1<<20, s.Iterations)
	assert.Equal(t, slog.LevelInfo, s.LogLevel)
}

func TestReadConfig(t *testing.T) {
	path := writeConfig(t, `
profile: bump
heap_size: 16MiB
preferred_base: "0x10000000000"
workers: 8
log_level: debug
`)
	cfg, err := ReadConfig(path)
	require.NoError(t, err)

	s, err := cfg.Resolve()
	require.NoError(t, err)
	assert.Equal(t, alloc.ProfileBump, s.Profile)
	assert.Equal(t, uintptr(16<<20), s.Factory.Size)
	assert.Equal(t, uint64(1<<40), uint64(s.Factory.PreferredBase))
	assert.Equal(t, 8, s.Workers)
	assert.Equal(t, 1<<20, s.Iterations, "missing keys keep defaults")
	assert.Equal(t, slog.LevelDebug, s.LogLevel)
}

func TestReadConfig_Empty(t *testing.T) {
	cfg, err := ReadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestReadConfig_UnknownKey(t *testing.T) {
	_, err := ReadConfig(writeConfig(t, "heap: 1MiB\n"))
	require.Error(t, err)
}

func TestReadConfig_Missing(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_Merge(t *testing.T) {
	file := DefaultConfig()
	file.Profile = "bump"
	file.Workers = 2

	flags := Config{Profile: "simple", Workers: 16, HeapSize: "1MiB"}
	changed := map[string]bool{"workers": true, "heap-size": true}

	got := file.Merge(flags, func(name string) bool { return changed[name] })
	assert.Equal(t, "bump", got.Profile, "unchanged flag keeps the file value")
	assert.Equal(t, 16, got.Workers)
	assert.Equal(t, "1MiB", got.HeapSize)
	assert.Equal(t, file.LogLevel, got.LogLevel)
}

func TestConfig_ResolveErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		is     error
	}{
		{name: "unknown profile", mutate: func(c *Config) { c.Profile = "buddy" }, is: alloc.ErrUnknownProfile},
		{name: "bad heap size", mutate: func(c *Config) { c.HeapSize = "lots" }},
		{name: "zero heap size", mutate: func(c *Config) { c.HeapSize = "0" }},
		{name: "bad base", mutate: func(c *Config) { c.PreferredBase = "0xzz" }},
		{name: "no workers", mutate: func(c *Config) { c.Workers = 0 }},
		{name: "negative iterations", mutate: func(c *Config) { c.Iterations = -1 }},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := cfg.Resolve()
			require.Error(t, err)
			if tt.is != nil {
				require.ErrorIs(t, err, tt.is)
			}
		})
	}
}
