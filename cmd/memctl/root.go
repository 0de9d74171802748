package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/memkit/alloc"
	"github.com/joshuapare/memkit/cmd/memctl/logger"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool

	configPath string
	logDir     string
	flagValues Config

	// settings is resolved once per invocation in PersistentPreRunE.
	settings Settings
)

// numbers groups digits in counts and byte totals ("1,048,576").
var numbers = message.NewPrinter(language.English)

var rootCmd = &cobra.Command{
	Use:   "memctl",
	Short: "Exercise and inspect memkit allocation strategies",
	Long: `memctl drives the memkit allocators from the command line. It runs the
demonstration workload, stress-tests a strategy from many goroutines, prints the
block size class table, and reports how the OS slab was placed.

Settings come from an optional YAML file (--config); flags override the file.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings(cmd)
	},
}

func init() {
	defaults := DefaultConfig()

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML settings file")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write JSON logs to daily files in this directory instead of stderr")
	rootCmd.PersistentFlags().
		StringVarP(&flagValues.Profile, "profile", "p", defaults.Profile, "Strategy profile: fixed-size-block, bump or simple")
	rootCmd.PersistentFlags().
		StringVar(&flagValues.HeapSize, "heap-size", defaults.HeapSize, "OS slab size (e.g. 64MiB)")
	rootCmd.PersistentFlags().
		StringVar(&flagValues.PreferredBase, "preferred-base", defaults.PreferredBase, "Preferred slab address (0 lets the OS choose)")
	rootCmd.PersistentFlags().
		IntVarP(&flagValues.Workers, "workers", "w", defaults.Workers, "Goroutines used by stress")
	rootCmd.PersistentFlags().
		IntVarP(&flagValues.Iterations, "iterations", "n", defaults.Iterations, "Iterations per workload")
	rootCmd.PersistentFlags().
		StringVar(&flagValues.LogLevel, "log-level", defaults.LogLevel, "Log level: debug, info, warn or error")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadSettings merges the config file with explicitly set flags and wires the
// allocator logger.
func loadSettings(cmd *cobra.Command) error {
	cfg := DefaultConfig()
	if configPath != "" {
		fileCfg, err := ReadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = fileCfg
	}
	cfg = cfg.Merge(flagValues, cmd.Flags().Changed)

	s, err := cfg.Resolve()
	if err != nil {
		return err
	}
	settings = s

	if err := logger.Init(logger.Options{Level: s.LogLevel, LogDir: logDir}); err != nil {
		return fmt.Errorf("failed to initialise logging: %w", err)
	}
	alloc.SetLogger(logger.L)
	logger.Debug("settings resolved",
		"profile", s.Profile.String(),
		"heap_size", s.Factory.Size,
		"preferred_base", fmt.Sprintf("%#x", s.Factory.PreferredBase),
	)
	return nil
}

// newProvider builds a coordinator for the resolved profile over a fresh OS
// chunk factory.
func newProvider(s Settings) (alloc.Provider, error) {
	return alloc.New(s.Profile, alloc.NewVirtualMemoryChunkFactory(s.Factory))
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(w io.Writer, format string, args ...any) {
	if !quiet {
		numbers.Fprintf(w, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(w io.Writer, format string, args ...any) {
	if verbose && !quiet {
		numbers.Fprintf(w, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
