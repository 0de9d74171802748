package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/alloc"
)

var (
	classesSize  uint64
	classesAlign uint64
)

func init() {
	cmd := newClassesCmd()
	cmd.Flags().Uint64Var(&classesSize, "size", 0, "Show the class chosen for this request size")
	cmd.Flags().Uint64Var(&classesAlign, "align", 1, "Alignment of the --size request")
	rootCmd.AddCommand(cmd)
}

func newClassesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "Print the fixed-size-block class table",
		Long: `The classes command prints the block sizes the fixed-size-block strategy
keeps free lists for. With --size it also reports which class a request maps to;
requests larger than the biggest class go straight to the fallback.

Example:
  memctl classes
  memctl classes --size 24 --align 16`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := buildClasses(cmd.Flags().Changed("size"), uintptr(classesSize), uintptr(classesAlign))
			if err != nil {
				return err
			}
			return printClasses(os.Stdout, report)
		},
	}
	return cmd
}

// ClassesReport lists the class table and, optionally, one lookup.
type ClassesReport struct {
	Classes []uintptr `json:"classes"`
	Query   *Lookup   `json:"query,omitempty"`
}

// Lookup is the class chosen for one request.
type Lookup struct {
	Size      uintptr `json:"size"`
	Align     uintptr `json:"align"`
	Class     uintptr `json:"class,omitempty"`
	Forwarded bool    `json:"forwarded"`
}

func buildClasses(query bool, size, align uintptr) (ClassesReport, error) {
	fsb, err := alloc.NewFixedSizeBlock(alloc.NewBump(), nil)
	if err != nil {
		return ClassesReport{}, err
	}
	report := ClassesReport{Classes: fsb.Stats().ClassSizes}
	if !query {
		return report, nil
	}

	l, err := alloc.NewLayout(size, align)
	if err != nil {
		return report, fmt.Errorf("invalid request: %w", err)
	}
	class, ok := fsb.ClassFor(l)
	report.Query = &Lookup{Size: l.Size, Align: l.Align, Class: class, Forwarded: !ok}
	return report, nil
}

func printClasses(w io.Writer, r ClassesReport) error {
	if jsonOut {
		return printJSON(w, r)
	}
	printInfo(w, "\nBlock Classes:\n")
	for i, size := range r.Classes {
		printInfo(w, "  [%d] %d bytes (%s)\n", i, size, humanize.IBytes(uint64(size)))
	}
	if q := r.Query; q != nil {
		printInfo(w, "\nRequest size=%d align=%d:\n", q.Size, q.Align)
		if q.Forwarded {
			printInfo(w, "  forwarded to fallback (larger than every class)\n")
		} else {
			printInfo(w, "  class %d bytes\n", q.Class)
		}
	}
	return nil
}
