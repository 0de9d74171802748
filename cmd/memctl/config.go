package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/memkit/alloc"
)

// Config is the on-disk settings file. Sizes and addresses are strings so the
// file can say "64MiB" or "0x20000000000".
type Config struct {
	Profile       string `yaml:"profile"`
	HeapSize      string `yaml:"heap_size"`
	PreferredBase string `yaml:"preferred_base"`
	Workers       int    `yaml:"workers"`
	Iterations    int    `yaml:"iterations"`
	LogLevel      string `yaml:"log_level"`
}

// Settings is a validated Config.
type Settings struct {
	Profile    alloc.Profile
	Factory    alloc.FactoryConfig
	Workers    int
	Iterations int
	LogLevel   slog.Level
}

// DefaultConfig mirrors the library defaults.
func DefaultConfig() Config {
	fc := alloc.DefaultFactoryConfig()
	return Config{
		Profile:       alloc.ProfileFixedSizeBlock.String(),
		HeapSize:      humanize.IBytes(uint64(fc.Size)),
		PreferredBase: fmt.Sprintf("%#x", fc.PreferredBase),
		Workers:       4,
		Iterations:    1 << 20,
		LogLevel:      "info",
	}
}

// ReadConfig loads a YAML settings file. Keys missing from the file keep their
// defaults; unknown keys are an error.
func ReadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	d := yaml.NewDecoder(f)
	d.KnownFields(true)
	if err := d.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge returns c with every field of flags whose flag name changed reports
// true copied over.
func (c Config) Merge(flags Config, changed func(name string) bool) Config {
	if changed("profile") {
		c.Profile = flags.Profile
	}
	if changed("heap-size") {
		c.HeapSize = flags.HeapSize
	}
	if changed("preferred-base") {
		c.PreferredBase = flags.PreferredBase
	}
	if changed("workers") {
		c.Workers = flags.Workers
	}
	if changed("iterations") {
		c.Iterations = flags.Iterations
	}
	if changed("log-level") {
		c.LogLevel = flags.LogLevel
	}
	return c
}

// Resolve validates c and converts it to Settings.
func (c Config) Resolve() (Settings, error) {
	var s Settings

	p, err := alloc.ParseProfile(c.Profile)
	if err != nil {
		return s, err
	}
	s.Profile = p

	size, err := humanize.ParseBytes(c.HeapSize)
	if err != nil {
		return s, fmt.Errorf("invalid heap_size %q: %w", c.HeapSize, err)
	}
	if size == 0 || size > uint64(^uintptr(0)) {
		return s, fmt.Errorf("invalid heap_size %q: out of range", c.HeapSize)
	}
	s.Factory.Size = uintptr(size)

	base, err := strconv.ParseUint(strings.TrimSpace(c.PreferredBase), 0, 64)
	if err != nil {
		return s, fmt.Errorf("invalid preferred_base %q: %w", c.PreferredBase, err)
	}
	if base > uint64(^uintptr(0)) {
		return s, fmt.Errorf("invalid preferred_base %q: out of range", c.PreferredBase)
	}
	s.Factory.PreferredBase = uintptr(base)

	if c.Workers < 1 {
		return s, fmt.Errorf("invalid workers %d: must be at least 1", c.Workers)
	}
	s.Workers = c.Workers

	if c.Iterations < 0 {
		return s, fmt.Errorf("invalid iterations %d: must not be negative", c.Iterations)
	}
	s.Iterations = c.Iterations

	if err := s.LogLevel.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return s, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return s, nil
}
