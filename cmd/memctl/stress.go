package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"slices"
	"time"
	"unsafe"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/memkit/alloc"
	"github.com/joshuapare/memkit/cmd/memctl/logger"
)

var (
	stressMaxSize string
	stressSeed    int64
)

// maxLivePerWorker bounds how many blocks one worker holds at a time.
const maxLivePerWorker = 64

func init() {
	cmd := newStressCmd()
	cmd.Flags().StringVar(&stressMaxSize, "max-size", "4KiB", "Largest request size")
	cmd.Flags().Int64Var(&stressSeed, "seed", 1, "Random seed; worker i uses seed+i")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Allocate and free concurrently and check that live blocks never overlap",
		Long: `The stress command runs --workers goroutines against one provider. Each
worker interleaves allocations of random size and alignment with frees, stamps
every block it owns and verifies the stamp before freeing. When all workers are
done, the blocks still live are checked for pairwise-disjoint address ranges.

Exhaustion is counted, not fatal: bump and simple profiles never reclaim.

Example:
  memctl stress --workers 8 --iterations 100000
  memctl stress --profile simple --max-size 64 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			maxSize, err := humanize.ParseBytes(stressMaxSize)
			if err != nil {
				return fmt.Errorf("invalid --max-size %q: %w", stressMaxSize, err)
			}
			if err := checkMaxSize(maxSize); err != nil {
				return fmt.Errorf("invalid --max-size %q: %w", stressMaxSize, err)
			}
			p, err := newProvider(settings)
			if err != nil {
				return err
			}
			report, err := runStress(cmd.Context(), p, StressOptions{
				Workers:    settings.Workers,
				Iterations: settings.Iterations,
				MaxSize:    uintptr(maxSize),
				Seed:       stressSeed,
			})
			if err != nil {
				return err
			}
			report.Profile = settings.Profile.String()
			return printStress(os.Stdout, report)
		},
	}
	return cmd
}

// StressOptions configures runStress.
type StressOptions struct {
	Workers    int
	Iterations int
	MaxSize    uintptr
	Seed       int64
}

// StressReport summarizes a stress run.
type StressReport struct {
	Profile    string        `json:"profile,omitempty"`
	Workers    int           `json:"workers"`
	Iterations int           `json:"iterations"`
	Allocs     uint64        `json:"allocs"`
	Frees      uint64        `json:"frees"`
	Exhausted  uint64        `json:"exhausted"`
	Live       int           `json:"live_at_end"`
	Allocated  uintptr       `json:"allocated"`
	Elapsed    time.Duration `json:"elapsed_ns"`
}

// span is one live block.
type span struct {
	ptr   unsafe.Pointer
	l     alloc.Layout
	stamp byte
}

func (s span) start() uintptr { return uintptr(s.ptr) }
func (s span) end() uintptr   { return uintptr(s.ptr) + s.l.Size }

func (s span) fill() {
	b := unsafe.Slice((*byte)(s.ptr), s.l.Size)
	for i := range b {
		b[i] = s.stamp
	}
}

func (s span) intact() bool {
	for _, c := range unsafe.Slice((*byte)(s.ptr), s.l.Size) {
		if c != s.stamp {
			return false
		}
	}
	return true
}

type workerResult struct {
	allocs, frees, exhausted uint64
	live                     []span
}

// checkMaxSize bounds the largest request to what a uintptr and the random
// size generator can represent.
func checkMaxSize(maxSize uint64) error {
	switch {
	case maxSize == 0:
		return errors.New("must be positive")
	case maxSize > math.MaxInt64 || maxSize > uint64(^uintptr(0)):
		return errors.New("out of range")
	}
	return nil
}

func runStress(ctx context.Context, p alloc.Provider, opts StressOptions) (StressReport, error) {
	report := StressReport{Workers: opts.Workers, Iterations: opts.Iterations}
	if err := checkMaxSize(uint64(opts.MaxSize)); err != nil {
		return report, fmt.Errorf("invalid max size %d: %w", opts.MaxSize, err)
	}
	if opts.Workers < 1 {
		return report, fmt.Errorf("invalid workers %d: must be at least 1", opts.Workers)
	}
	results := make([]workerResult, opts.Workers)
	started := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for id := range opts.Workers {
		g.Go(func() error {
			return stressWorker(ctx, p, id, opts, &results[id])
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	report.Elapsed = time.Since(started)

	var live []span
	for _, r := range results {
		report.Allocs += r.allocs
		report.Frees += r.frees
		report.Exhausted += r.exhausted
		live = append(live, r.live...)
	}
	report.Live = len(live)
	report.Allocated = p.Allocated()

	if err := checkDisjoint(live); err != nil {
		return report, err
	}
	for _, s := range live {
		if !s.intact() {
			return report, fmt.Errorf("block %#x (%d bytes) was overwritten", s.start(), s.l.Size)
		}
		p.Dealloc(s.ptr, s.l)
	}

	logger.Info("stress finished",
		"workers", opts.Workers,
		"allocs", report.Allocs,
		"frees", report.Frees,
		"exhausted", report.Exhausted,
		"elapsed", report.Elapsed,
	)
	return report, nil
}

func stressWorker(ctx context.Context, p alloc.Provider, id int, opts StressOptions, out *workerResult) error {
	rng := rand.New(rand.NewSource(opts.Seed + int64(id)))
	live := make([]span, 0, maxLivePerWorker)

	for i := range opts.Iterations {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if len(live) > 0 && (len(live) == maxLivePerWorker || rng.Intn(3) == 0) {
			j := rng.Intn(len(live))
			s := live[j]
			if !s.intact() {
				return fmt.Errorf("worker %d: block %#x (%d bytes) was overwritten", id, s.start(), s.l.Size)
			}
			p.Dealloc(s.ptr, s.l)
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
			out.frees++
			continue
		}

		l := alloc.Layout{
			Size:  1 + uintptr(rng.Int63n(int64(opts.MaxSize))),
			Align: 1 << rng.Intn(7),
		}
		ptr, err := p.Alloc(l)
		if errors.Is(err, alloc.ErrExhausted) {
			out.exhausted++
			continue
		}
		if err != nil {
			return fmt.Errorf("worker %d: %w", id, err)
		}
		if uintptr(ptr)%l.Align != 0 {
			return fmt.Errorf("worker %d: block %p not aligned to %d", id, ptr, l.Align)
		}
		s := span{ptr: ptr, l: l, stamp: byte(id*31 + i)}
		s.fill()
		live = append(live, s)
		out.allocs++
	}

	out.live = live
	return nil
}

// checkDisjoint reports the first pair of overlapping spans.
func checkDisjoint(spans []span) error {
	sorted := slices.Clone(spans)
	slices.SortFunc(sorted, func(a, b span) int {
		switch {
		case a.start() < b.start():
			return -1
		case a.start() > b.start():
			return 1
		}
		return 0
	})
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.end() > cur.start() {
			return fmt.Errorf("blocks overlap: [%#x, %#x) and [%#x, %#x)",
				prev.start(), prev.end(), cur.start(), cur.end())
		}
	}
	return nil
}

func printStress(w io.Writer, r StressReport) error {
	if jsonOut {
		return printJSON(w, r)
	}
	printInfo(w, "\nStress Results:\n")
	printInfo(w, "  Profile: %s\n", r.Profile)
	printInfo(w, "  Workers: %d\n", r.Workers)
	printInfo(w, "  Iterations per worker: %d\n", r.Iterations)
	printInfo(w, "  Allocations: %d\n", r.Allocs)
	printInfo(w, "  Frees: %d\n", r.Frees)
	printInfo(w, "  Exhausted: %d\n", r.Exhausted)
	printInfo(w, "  Live at end: %d\n", r.Live)
	printInfo(w, "  Allocated: %s\n", humanize.IBytes(uint64(r.Allocated)))
	printInfo(w, "  Elapsed: %s\n", r.Elapsed)
	printInfo(w, "\n  ✓ Live blocks disjoint\n")
	return nil
}
