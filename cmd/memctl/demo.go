package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/alloc"
	"github.com/joshuapare/memkit/cmd/memctl/logger"
	"github.com/joshuapare/memkit/pkg/memory"
)

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the demonstration workload",
		Long: `The demo command stores a string, pushes into a growable buffer and then
boxes --iterations integers one at a time, checking each value. The running
allocated total is printed after each of the first two steps.

Example:
  memctl demo
  memctl demo --profile bump --iterations 1000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newProvider(settings)
			if err != nil {
				return err
			}
			return runDemo(os.Stdout, p, settings.Iterations)
		},
	}
	return cmd
}

func runDemo(w io.Writer, p alloc.Provider, iterations int) error {
	s, err := memory.String(p, "allocating a string!")
	if err != nil {
		return fmt.Errorf("failed to store string: %w", err)
	}
	printVerbose(w, "stored %q\n", s)
	printInfo(w, "allocated so far: %d\n", p.Allocated())

	buf := memory.NewBuffer(p)
	if err := buf.Append(1); err != nil {
		return fmt.Errorf("failed to grow buffer: %w", err)
	}
	printInfo(w, "allocated so far: %d\n", p.Allocated())

	for i := range iterations {
		x, err := memory.Box(p, i)
		if err != nil {
			return fmt.Errorf("failed to box value %d: %w", i, err)
		}
		if *x != i {
			return fmt.Errorf("boxed value %d read back as %d", i, *x)
		}
		memory.Unbox(p, x)
	}
	printVerbose(w, "boxed %d values\n", iterations)
	logger.Info("demo finished", "iterations", iterations, "allocated", p.Allocated())

	buf.Release()
	memory.FreeString(p, s)
	return nil
}
