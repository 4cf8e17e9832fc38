package check

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Run status strings.
const (
	RunPass = "PASS"
	RunFail = "FAIL"
)

// RunResult accumulates results for one run. It is safe for concurrent use:
// every counter is updated atomically.
type RunResult struct {
	checks atomic.Int64
	ok     atomic.Int64
	warns  atomic.Int64
	fails  atomic.Int64

	start time.Time
}

// NewRunResult returns an empty tally whose clock starts now.
func NewRunResult() *RunResult {
	return &RunResult{start: time.Now()}
}

// Record counts r.
func (rr *RunResult) Record(r Result) {
	rr.checks.Add(1)
	switch r.Status {
	case StatusOK:
		rr.ok.Add(1)
	case StatusWarn:
		rr.warns.Add(1)
	default:
		rr.fails.Add(1)
	}
}

// Fails returns the number of failed checks so far.
func (rr *RunResult) Fails() int {
	return int(rr.fails.Load())
}

// Summary returns the current totals.
func (rr *RunResult) Summary() Summary {
	s := Summary{
		Checks:  int(rr.checks.Load()),
		OK:      int(rr.ok.Load()),
		Warns:   int(rr.warns.Load()),
		Fails:   int(rr.fails.Load()),
		Elapsed: time.Since(rr.start),
	}
	s.Status = RunPass
	if s.Fails > 0 {
		s.Status = RunFail
		s.ExitCode = 1
	}
	return s
}

// Summary is the final tally of a run.
type Summary struct {
	Checks  int
	OK      int
	Warns   int
	Fails   int
	Elapsed time.Duration

	// Status is "PASS" when no check failed and "FAIL" otherwise.
	Status string

	// ExitCode is 0 when no check failed and 1 otherwise.
	ExitCode int
}

// Passed reports whether no check failed.
func (s Summary) Passed() bool {
	return s.Fails == 0
}

// String formats the summary as the final output line.
func (s Summary) String() string {
	return fmt.Sprintf("[RESULT] %s | checks=%d, ok=%d, warns=%d, fails=%d, time=%.2fs",
		s.Status, s.Checks, s.OK, s.Warns, s.Fails, s.Elapsed.Seconds())
}
