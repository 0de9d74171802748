package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// BenchmarkResult represents a parsed benchmark result.
type BenchmarkResult struct {
	Name        string
	Strategy    string // "Simple", "Bump", "FixedSizeBlock", ...
	Operation   string // "Alloc", "AllocFree", ...
	Iterations  int
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
}

// OperationSummary groups every strategy measured for one operation.
type OperationSummary struct {
	Operation string
	Results   []BenchmarkResult // fastest first
}

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

// BenchmarkSimple_Alloc-8    10000    12.45 ns/op    0 B/op    0 allocs/op
var benchmarkRegex = regexp.MustCompile(
	`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+B/op)?(?:\s+([\d.]+)\s+allocs/op)?`,
)

func main() {
	flag.Parse()

	var in io.Reader = os.Stdin
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	results := parseBenchmarks(bufio.NewScanner(in))
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	report := generateMarkdownReport(summarize(results), time.Now())

	if *outputFile == "" {
		fmt.Fprint(os.Stdout, report)
		return
	}
	if err := os.WriteFile(*outputFile, []byte(report), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
	}
}

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult

	for scanner.Scan() {
		line := scanner.Text()

		// Try to parse as JSON (from -json flag)
		var testEvent map[string]any
		if err := json.Unmarshal([]byte(line), &testEvent); err == nil {
			if output, ok := testEvent["Output"].(string); ok {
				line = output
			}
		}

		matches := benchmarkRegex.FindStringSubmatch(strings.TrimSpace(line))
		if matches == nil {
			continue
		}

		r := BenchmarkResult{Name: matches[1]}
		r.Iterations, _ = strconv.Atoi(matches[2])
		r.NsPerOp, _ = strconv.ParseFloat(matches[3], 64)
		if matches[4] != "" {
			r.BytesPerOp, _ = strconv.ParseInt(matches[4], 10, 64)
		}
		if matches[5] != "" {
			r.AllocsPerOp, _ = strconv.ParseInt(matches[5], 10, 64)
		}
		r.Strategy, r.Operation = splitName(r.Name)
		results = append(results, r)
	}

	return results
}

// splitName turns BenchmarkFixedSizeBlock_AllocFree-8 into
// ("FixedSizeBlock", "AllocFree"). Names without an underscore are their own
// operation under strategy "-".
func splitName(name string) (string, string) {
	name = strings.TrimPrefix(name, "Benchmark")
	if dash := strings.LastIndex(name, "-"); dash > 0 {
		if _, err := strconv.Atoi(name[dash+1:]); err == nil {
			name = name[:dash]
		}
	}
	strategy, op, ok := strings.Cut(name, "_")
	if !ok {
		return "-", name
	}
	return strategy, op
}

func summarize(results []BenchmarkResult) []OperationSummary {
	grouped := make(map[string][]BenchmarkResult)
	for _, r := range results {
		grouped[r.Operation] = append(grouped[r.Operation], r)
	}

	summaries := make([]OperationSummary, 0, len(grouped))
	for op, rs := range grouped {
		sort.Slice(rs, func(i, j int) bool { return rs[i].NsPerOp < rs[j].NsPerOp })
		summaries = append(summaries, OperationSummary{Operation: op, Results: rs})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Operation < summaries[j].Operation
	})
	return summaries
}

func generateMarkdownReport(summaries []OperationSummary, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("# Allocator Benchmark Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format("2006-01-02 15:04:05")))

	sb.WriteString("## Detailed Results\n\n")
	sb.WriteString("| Operation | Strategy | ns/op | vs fastest | Memory (B/op) | Allocs |\n")
	sb.WriteString("|-----------|----------|-------|------------|---------------|--------|\n")

	for _, s := range summaries {
		fastest := s.Results[0].NsPerOp
		for i, r := range s.Results {
			rel := "**fastest** ✓"
			if i > 0 && fastest > 0 {
				rel = fmt.Sprintf("%.2fx", r.NsPerOp/fastest)
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
				s.Operation,
				r.Strategy,
				humanize.CommafWithDigits(r.NsPerOp, 2),
				rel,
				humanize.IBytes(uint64(r.BytesPerOp)),
				humanize.Comma(r.AllocsPerOp),
			))
		}
	}

	sb.WriteString("\n## Notes\n\n")
	sb.WriteString("- **vs fastest**: time relative to the fastest strategy for the same operation\n")
	sb.WriteString("- **Memory / Allocs**: Go heap traffic only; strategy memory is off-heap\n")

	return sb.String()
}
