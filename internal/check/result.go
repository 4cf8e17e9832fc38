// Package check validates rendered rasters and tallies the outcome of a run.
//
// A check is a plain function returning exactly one Result. Checks never
// return errors: malformed input, such as frames of different shapes,
// becomes a failing Result with a message saying what was wrong.
//
// Results are recorded into a RunResult, whose counters decide the run's
// status and process exit code. Runner executes named sections, prints one
// line per result, and isolates sections from each other's errors and panics.
package check

import "fmt"

// Status is the outcome of one check.
type Status int

// Check outcomes. A warning is suspicious but does not fail the run.
const (
	StatusOK Status = iota
	StatusWarn
	StatusFail
)

// String returns the tag printed in front of a result line.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result is the outcome of one check with a human-readable message.
type Result struct {
	Status  Status
	Message string
}

// OK returns a passing result.
func OK(format string, args ...any) Result {
	return Result{Status: StatusOK, Message: fmt.Sprintf(format, args...)}
}

// Warn returns a warning result.
func Warn(format string, args ...any) Result {
	return Result{Status: StatusWarn, Message: fmt.Sprintf(format, args...)}
}

// Fail returns a failing result.
func Fail(format string, args ...any) Result {
	return Result{Status: StatusFail, Message: fmt.Sprintf(format, args...)}
}

// Expect returns OK when cond holds and a result with status otherwise.
// Both outcomes carry the same message.
func Expect(cond bool, otherwise Status, format string, args ...any) Result {
	r := Result{Status: StatusOK, Message: fmt.Sprintf(format, args...)}
	if !cond {
		r.Status = otherwise
	}
	return r
}

// String formats the result as its output line, e.g. "[OK] png written".
func (r Result) String() string {
	return "[" + r.Status.String() + "] " + r.Message
}
