// Package tinybench is a minimal comparison-benchmark runner: it samples
// wall-clock throughput and heap allocations for a function, optionally
// against a reference implementation, and prints a fixed-width table with a
// statistical-significance verdict rather than a bare number.
package tinybench

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/codahale/tinystat"
)

const (
	DefaultSamples  = 100
	DefaultDuration = 10 * time.Millisecond
	DefaultTableFmt = "%-28s %-12s %-12s %-12s %-18s %-18s\n"
	DefaultFilename = "roaring-bench.json"
)

// Result is one persisted benchmark run, keyed by name in the results file
// so a later run can report a delta against it.
type Result struct {
	Name      string    `json:"name"`
	Samples   []float64 `json:"samples"`
	Timestamp int64     `json:"timestamp"`
}

// Option configures a Runner.
type Option func(*config)

type config struct {
	filename string
	filter   string
	samples  int
	duration time.Duration
	tableFmt string
	showRef  bool
}

// WithFile overrides where results are persisted between runs.
func WithFile(filename string) Option {
	return func(c *config) { c.filename = filename }
}

// WithFilter restricts Run to benchmark names with the given prefix.
func WithFilter(prefix string) Option {
	return func(c *config) { c.filter = prefix }
}

// WithSamples sets how many independent samples are collected per
// benchmark; more samples sharpen the significance test at the cost of
// longer runs.
func WithSamples(n int) Option {
	return func(c *config) { c.samples = n }
}

// WithDuration sets how long each sample runs the benchmarked function in a
// tight loop; the sample's throughput is the number of calls completed in
// that time.
func WithDuration(d time.Duration) Option {
	return func(c *config) { c.duration = d }
}

// WithReference enables the "vs ref" comparison column.
func WithReference() Option {
	return func(c *config) { c.showRef = true }
}

// Runner drives a sequence of named benchmarks and prints a results table.
type Runner struct {
	config
}

// Run configures a Runner with opts, prints the table header, then invokes
// fn to register and execute benchmarks against it.
func Run(fn func(*Runner), opts ...Option) {
	cfg := config{
		filename: DefaultFilename,
		samples:  DefaultSamples,
		duration: DefaultDuration,
		tableFmt: DefaultTableFmt,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Runner{config: cfg}
	r.printHeader()
	fn(r)
}

func (r *Runner) printHeader() {
	if r.showRef {
		fmt.Printf(r.tableFmt, "name", "time/op", "ops/s", "bytes/op", "vs prev", "vs ref")
		fmt.Printf(r.tableFmt, strings.Repeat("-", 28), strings.Repeat("-", 12), strings.Repeat("-", 12), strings.Repeat("-", 12), strings.Repeat("-", 18), strings.Repeat("-", 18))
		return
	}
	fmt.Printf("%-28s %-12s %-12s %-12s %-18s\n", "name", "time/op", "ops/s", "bytes/op", "vs prev")
	fmt.Printf("%-28s %-12s %-12s %-12s %-18s\n", strings.Repeat("-", 28), strings.Repeat("-", 12), strings.Repeat("-", 12), strings.Repeat("-", 12), strings.Repeat("-", 18))
}

func (r *Runner) shouldRun(name string) bool {
	return r.filter == "" || strings.HasPrefix(name, r.filter)
}

// sample runs fn in a tight loop for r.duration, once per r.samples, and
// reports ops/sec and heap bytes allocated per op for each sample.
func (r *Runner) sample(fn func()) (opsPerSec, allocsPerOp []float64) {
	opsPerSec = make([]float64, 0, r.samples)
	allocsPerOp = make([]float64, 0, r.samples)

	for i := 0; i < r.samples; i++ {
		runtime.GC()
		runtime.GC()

		var before, after runtime.MemStats
		runtime.ReadMemStats(&before)

		start := time.Now()
		ops := 0
		for time.Since(start) < r.duration {
			fn()
			ops++
		}
		elapsed := time.Since(start)

		runtime.ReadMemStats(&after)

		opsPerSec = append(opsPerSec, float64(ops)/elapsed.Seconds())
		allocsPerOp = append(allocsPerOp, float64(after.HeapAlloc-before.HeapAlloc)/float64(ops))
	}
	return opsPerSec, allocsPerOp
}

func (r *Runner) loadResults() map[string]Result {
	data, err := os.ReadFile(r.filename)
	if err != nil {
		return map[string]Result{}
	}
	var results map[string]Result
	if err := json.Unmarshal(data, &results); err != nil {
		return map[string]Result{}
	}
	return results
}

func (r *Runner) saveResult(result Result) {
	current := r.loadResults()
	current[result.Name] = result

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		fmt.Printf("tinybench: marshaling results: %v\n", err)
		return
	}
	if err := os.WriteFile(r.filename, data, 0644); err != nil {
		fmt.Printf("tinybench: writing %s: %v\n", r.filename, err)
	}
}

func (r *Runner) formatComparison(ours, other []float64) string {
	if len(other) == 0 {
		return "new"
	}
	oursStats := tinystat.Summarize(ours)
	otherStats := tinystat.Summarize(other)
	if otherStats.Mean == 0 {
		if oursStats.Mean > 0 {
			return "better: inf"
		}
		return "~ 1.00x"
	}

	speedup := oursStats.Mean / otherStats.Mean
	diff := tinystat.Compare(oursStats, otherStats, 99)
	switch {
	case !diff.Significant():
		return fmt.Sprintf("~ %.2fx (p=%.3f)", speedup, diff.PValue)
	case speedup > 1:
		return fmt.Sprintf("better %.2fx (p=%.3f)", speedup, diff.PValue)
	default:
		return fmt.Sprintf("worse %.2fx (p=%.3f)", speedup, diff.PValue)
	}
}

func formatTime(nsPerOp float64) string {
	if nsPerOp >= 1e6 {
		return fmt.Sprintf("%.1fms", nsPerOp/1e6)
	}
	return fmt.Sprintf("%.1fns", nsPerOp)
}

func formatOps(opsPerSec float64) string {
	switch {
	case opsPerSec >= 1e6:
		return fmt.Sprintf("%.1fM", opsPerSec/1e6)
	case opsPerSec >= 1e3:
		return fmt.Sprintf("%.1fK", opsPerSec/1e3)
	default:
		return fmt.Sprintf("%.0f", opsPerSec)
	}
}

func formatAllocs(allocsPerOp float64) string {
	if allocsPerOp >= 1000 {
		return fmt.Sprintf("%.1fK", allocsPerOp/1000)
	}
	return fmt.Sprintf("%.0f", allocsPerOp)
}

// Run benchmarks ourFn under name, persists the result, and prints a table
// row comparing it against the previous persisted run and, if refFn is
// given, against a reference implementation.
func (r *Runner) Run(name string, ourFn func(), refFn ...func()) {
	if !r.shouldRun(name) {
		return
	}

	prev := r.loadResults()

	ourSamples, ourAllocs := r.sample(ourFn)
	ourMean := tinystat.Summarize(ourSamples).Mean
	nsPerOp := 1e9 / ourMean

	var totalAllocs float64
	for _, v := range ourAllocs {
		totalAllocs += v
	}
	avgAllocs := totalAllocs / float64(len(ourAllocs))

	delta := "new"
	if prevResult, ok := prev[name]; ok {
		delta = r.formatComparison(ourSamples, prevResult.Samples)
	}

	vsRef := ""
	if len(refFn) > 0 && refFn[0] != nil {
		refSamples, _ := r.sample(refFn[0])
		vsRef = r.formatComparison(ourSamples, refSamples)
	}

	if r.showRef {
		fmt.Printf(r.tableFmt, name, formatTime(nsPerOp), formatOps(ourMean), formatAllocs(avgAllocs), delta, vsRef)
	} else {
		fmt.Printf("%-28s %-12s %-12s %-12s %-18s\n", name, formatTime(nsPerOp), formatOps(ourMean), formatAllocs(avgAllocs), delta)
	}

	r.saveResult(Result{Name: name, Samples: ourSamples, Timestamp: time.Now().Unix()})
}
