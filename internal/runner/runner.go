// internal/runner/runner.go
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"oligotools/internal/overlap"
	"oligotools/internal/pipeline"
	"oligotools/internal/report"
	"oligotools/internal/seq"
)

// Error kinds surfaced through Result.Err. InvalidParameters comes from
// overlap.ErrInvalidParameters; sequence-character failures carry
// seq.ErrUnsupportedCharacter from the loader.
var (
	ErrEmptyInput  = errors.New("empty input")
	ErrOutputWrite = errors.New("output write failure")
)

// Artifact file names inside the output directory.
const (
	ReportFileName  = "primer_overlap_analysis.txt"
	SummaryFileName = "primer_overlap_summary.csv"
)

// State is the runner's lifecycle phase. Completed and Failed are terminal.
type State int32

const (
	Idle State = iota
	Validating
	Scanning
	Reporting
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Scanning:
		return "scanning"
	case Reporting:
		return "reporting"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options configure one execution.
type Options struct {
	OutDir  string // when empty, no artifacts are written
	Threads int
	Log     *zap.Logger // nil means no logging
}

// Result is everything a completed (or failed) run exposes. Results stays
// populated even when persisting artifacts failed, so callers can still
// surface the computed scan.
type Result struct {
	ExecutionID  string
	Results      []overlap.Result
	Sequences    int
	PairsScanned int
	Flagged      int
	High         int
	Medium       int
	Low          int
	ReportPath   string
	SummaryPath  string
	Elapsed      time.Duration
	Err          error
}

// Runner executes the scan → classify → report pipeline off the caller's
// control flow. Start launches the run; Wait blocks for the outcome. A
// Runner is single-use; independent runs need independent Runners, and may
// share the same (read-only) sequence set.
type Runner struct {
	set    []seq.Record
	params overlap.Params
	opts   Options

	state   atomic.Int32
	started atomic.Bool
	done    chan struct{}
	res     Result
}

// New builds a Runner in the Idle state.
func New(set []seq.Record, params overlap.Params, opts Options) *Runner {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Runner{set: set, params: params, opts: opts, done: make(chan struct{})}
}

// State reports the current lifecycle phase.
func (r *Runner) State() State { return State(r.state.Load()) }

// Start launches the run on its own goroutine. Further Start calls are
// no-ops; the first run's Result is what Wait returns.
func (r *Runner) Start(ctx context.Context) {
	if !r.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(r.done)
		r.res = r.run(ctx)
	}()
}

// Wait blocks until the run reaches a terminal state and returns its Result.
func (r *Runner) Wait() Result {
	<-r.done
	return r.res
}

// Run executes synchronously: Start + Wait.
func (r *Runner) Run(ctx context.Context) Result {
	r.Start(ctx)
	return r.Wait()
}

func (r *Runner) fail(res Result, err error) Result {
	r.state.Store(int32(Failed))
	res.Err = err
	r.opts.Log.Warn("run failed", zap.String("execution_id", res.ExecutionID), zap.Error(err))
	return res
}

func (r *Runner) run(ctx context.Context) Result {
	start := time.Now()
	res := Result{ExecutionID: uuid.NewString(), Sequences: len(r.set)}
	log := r.opts.Log.With(zap.String("execution_id", res.ExecutionID))
	log.Info("run started", zap.Int("sequences", len(r.set)), zap.String("parameters", r.params.String()))

	// Validating: parameter bounds plus defensive input checks. Category
	// compatibility is the loader's job; non-emptiness is re-checked here.
	r.state.Store(int32(Validating))
	if err := r.params.Validate(); err != nil {
		return r.fail(res, err)
	}
	switch {
	case len(r.set) == 0:
		return r.fail(res, fmt.Errorf("no sequences supplied: %w", ErrEmptyInput))
	case len(r.set) == 1 && !r.params.IncludeSelf:
		return r.fail(res, fmt.Errorf("one sequence and self pairs disabled: %w", ErrEmptyInput))
	}

	// Scanning: pure and read-only over the input set.
	r.state.Store(int32(Scanning))
	res.PairsScanned = pipeline.PairCount(len(r.set), r.params.IncludeSelf)
	results, err := pipeline.ScanAll(ctx, pipeline.Config{Threads: r.opts.Threads}, r.set, r.params)
	if err != nil {
		return r.fail(res, err)
	}
	res.Results = results
	res.Flagged = len(results)
	res.High, res.Medium, res.Low = overlap.Tally(results)
	log.Info("scan finished",
		zap.Int("pairs", res.PairsScanned),
		zap.Int("flagged", res.Flagged),
		zap.Int("high", res.High), zap.Int("medium", res.Medium), zap.Int("low", res.Low))

	// Reporting: the only stateful phase. Both artifacts land or neither.
	if r.opts.OutDir != "" {
		r.state.Store(int32(Reporting))
		reportPath, summaryPath, werr := r.writeArtifacts(results)
		if werr != nil {
			res.Elapsed = time.Since(start)
			return r.fail(res, fmt.Errorf("%v: %w", werr, ErrOutputWrite))
		}
		res.ReportPath, res.SummaryPath = reportPath, summaryPath
		log.Info("artifacts written", zap.String("report", reportPath), zap.String("summary", summaryPath))
	}

	res.Elapsed = time.Since(start)
	r.state.Store(int32(Completed))
	log.Info("run completed", zap.Duration("elapsed", res.Elapsed))
	return res
}

// writeArtifacts stages both documents as temp files and renames them into
// place only after both writes succeeded, so a failed run never leaves a
// plausible-looking partial artifact behind.
func (r *Runner) writeArtifacts(results []overlap.Result) (string, string, error) {
	if err := os.MkdirAll(r.opts.OutDir, 0o755); err != nil {
		return "", "", err
	}
	info := report.RunInfo{
		Sequences:    len(r.set),
		PairsScanned: pipeline.PairCount(len(r.set), r.params.IncludeSelf),
		Params:       r.params,
	}

	reportPath := filepath.Join(r.opts.OutDir, ReportFileName)
	summaryPath := filepath.Join(r.opts.OutDir, SummaryFileName)

	var staged []string
	cleanup := func() {
		for _, p := range staged {
			_ = os.Remove(p)
		}
	}

	stage := func(final string, write func(f *os.File) error) error {
		f, err := os.CreateTemp(r.opts.OutDir, filepath.Base(final)+".tmp*")
		if err != nil {
			return err
		}
		staged = append(staged, f.Name())
		if err := write(f); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}

	if err := stage(reportPath, func(f *os.File) error {
		return report.WriteNarrative(f, info, results)
	}); err != nil {
		cleanup()
		return "", "", err
	}
	if err := stage(summaryPath, func(f *os.File) error {
		return report.WriteSummary(f, results)
	}); err != nil {
		cleanup()
		return "", "", err
	}

	var renamed []string
	for i, final := range []string{reportPath, summaryPath} {
		if err := os.Rename(staged[i], final); err != nil {
			for _, p := range renamed {
				_ = os.Remove(p)
			}
			cleanup()
			return "", "", err
		}
		renamed = append(renamed, final)
	}
	return reportPath, summaryPath, nil
}

// Summary renders the one-line aggregate used by CLIs and logs.
func (res Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scanned %d pairs across %d sequences: %d flagged (HIGH=%d MEDIUM=%d LOW=%d)",
		res.PairsScanned, res.Sequences, res.Flagged, res.High, res.Medium, res.Low)
	return b.String()
}
