package check

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gogpu/rastercheck/internal/parallel"
)

// SectionFunc performs one section of a run and returns its results.
//
// Returning an error ends the section: the results returned with it are
// kept and the error is recorded as one additional failure.
type SectionFunc func(ctx context.Context) ([]Result, error)

// Section is a named, independently fault-isolated group of checks.
type Section struct {
	// Name identifies the section in banners, errors and selection lists.
	Name string

	// Title is the banner text; it defaults to Name.
	Title string

	Run SectionFunc
}

func (s Section) title() string {
	if s.Title != "" {
		return s.Title
	}
	return s.Name
}

// Runner executes sections and reports every result.
type Runner struct {
	out      io.Writer
	logger   *slog.Logger
	label    string
	parallel bool
	workers  int
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithOutput sets where result lines are printed. Defaults to io.Discard.
func WithOutput(w io.Writer) RunnerOption {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithLogger sets the logger for run diagnostics.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithLabel sets the tag shown in section banners, "=== [label] title ===".
func WithLabel(label string) RunnerOption {
	return func(r *Runner) {
		r.label = label
	}
}

// WithParallel runs sections concurrently on a worker pool. Output is
// still printed section by section in declaration order.
func WithParallel(workers int) RunnerOption {
	return func(r *Runner) {
		r.parallel = true
		r.workers = workers
	}
}

// NewRunner creates a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		out:    io.Discard,
		logger: slog.New(slog.DiscardHandler),
		label:  "rastercheck",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// sectionRun is the buffered outcome of one section.
type sectionRun struct {
	out     bytes.Buffer
	results int
	elapsed time.Duration
}

// Run executes sections and returns the summary, which it also prints as
// the last line. Run always completes: a section that fails, panics or is
// skipped because ctx ended is recorded as a failure and the run goes on.
func (r *Runner) Run(ctx context.Context, sections []Section) Summary {
	rr := NewRunResult()
	runs := make([]*sectionRun, len(sections))
	for i := range runs {
		runs[i] = &sectionRun{}
	}

	if r.parallel && len(sections) > 1 {
		pool := parallel.NewWorkerPool(r.workers)
		work := make([]func(), len(sections))
		for i, s := range sections {
			work[i] = func() { r.runSection(ctx, s, rr, runs[i]) }
		}
		pool.ExecuteAll(work)
		pool.Close()

		for _, sr := range runs {
			_, _ = r.out.Write(sr.out.Bytes())
		}
	} else {
		for i, s := range sections {
			r.runSection(ctx, s, rr, runs[i])
			_, _ = r.out.Write(runs[i].out.Bytes())
		}
	}

	sum := rr.Summary()
	fmt.Fprintln(r.out, sum)
	r.logger.Info("run finished",
		slog.String("status", sum.Status),
		slog.Int("checks", sum.Checks),
		slog.Int("fails", sum.Fails),
		slog.Duration("elapsed", sum.Elapsed))
	return sum
}

// runSection runs s, records its results into rr and writes its lines
// into sr.out.
func (r *Runner) runSection(ctx context.Context, s Section, rr *RunResult, sr *sectionRun) {
	fmt.Fprintf(&sr.out, "\n=== [%s] %s ===\n", r.label, s.title())

	record := func(res Result) {
		rr.Record(res)
		sr.results++
		fmt.Fprintln(&sr.out, res)
	}

	if err := ctx.Err(); err != nil {
		record(Fail("%s section not run: %v", s.Name, err))
		return
	}

	start := time.Now()
	results, err := safeRun(ctx, s)
	for _, res := range results {
		record(res)
	}
	if err != nil {
		record(Fail("%s section error: %v", s.Name, err))
	}
	sr.elapsed = time.Since(start)

	fmt.Fprintf(&sr.out, "[done] %s completed in %.2fs\n", s.title(), sr.elapsed.Seconds())
	r.logger.Debug("section finished",
		slog.String("section", s.Name),
		slog.Int("results", sr.results),
		slog.Duration("elapsed", sr.elapsed))
}

// safeRun calls s.Run, turning a panic into an error.
func safeRun(ctx context.Context, s Section) (results []Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	if s.Run == nil {
		return nil, fmt.Errorf("no run function")
	}
	return s.Run(ctx)
}
