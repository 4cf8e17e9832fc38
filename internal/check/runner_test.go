package check

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func sectionOf(name string, results ...Result) Section {
	return Section{Name: name, Run: func(context.Context) ([]Result, error) {
		return results, nil
	}}
}

func TestRunResult_Summary(t *testing.T) {
	rr := NewRunResult()
	for _, r := range []Result{OK("a"), OK("b"), Warn("c")} {
		rr.Record(r)
	}
	s := rr.Summary()
	if s.Checks != 3 || s.OK != 2 || s.Warns != 1 || s.Fails != 0 {
		t.Errorf("Summary() = %+v", s)
	}
	if s.Status != RunPass || s.ExitCode != 0 || !s.Passed() {
		t.Errorf("clean run: status %s exit %d", s.Status, s.ExitCode)
	}

	rr.Record(Fail("d"))
	s = rr.Summary()
	if s.Status != RunFail || s.ExitCode != 1 || s.Passed() {
		t.Errorf("failed run: status %s exit %d", s.Status, s.ExitCode)
	}
	if !strings.HasPrefix(s.String(), "[RESULT] FAIL | checks=4, ok=2, warns=1, fails=1, time=") {
		t.Errorf("String() = %q", s.String())
	}
}

func TestRunResult_Concurrent(t *testing.T) {
	rr := NewRunResult()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				if (i+j)%10 == 0 {
					rr.Record(Fail("x"))
				} else {
					rr.Record(OK("x"))
				}
			}
		}()
	}
	wg.Wait()

	s := rr.Summary()
	if s.Checks != 5000 || s.Fails != 500 || s.OK != 4500 {
		t.Errorf("Summary() = %+v", s)
	}
}

func TestRunner_Output(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(WithOutput(&out), WithLabel("demo"))

	sum := r.Run(context.Background(), []Section{
		{Name: "static", Title: "Static PNG/JPEG", Run: func(context.Context) ([]Result, error) {
			return []Result{OK("png written"), Warn("odd size")}, nil
		}},
	})

	text := out.String()
	for _, want := range []string{
		"=== [demo] Static PNG/JPEG ===",
		"[OK] png written",
		"[warn] odd size",
		"[done] Static PNG/JPEG completed in",
		"[RESULT] PASS | checks=2, ok=1, warns=1, fails=0",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if sum.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", sum.ExitCode)
	}
}

// TestRunner_FaultIsolation checks that an error or panic in one section
// becomes one failure and the remaining sections still run.
func TestRunner_FaultIsolation(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(WithOutput(&out))

	sum := r.Run(context.Background(), []Section{
		sectionOf("first", OK("one")),
		{Name: "broken", Run: func(context.Context) ([]Result, error) {
			return []Result{OK("before error")}, errors.New("invalid dimension")
		}},
		{Name: "panicky", Run: func(context.Context) ([]Result, error) {
			var m map[string]int
			m["x"] = 1
			return nil, nil
		}},
		sectionOf("last", OK("two")),
	})

	if sum.Checks != 5 || sum.OK != 3 || sum.Fails != 2 {
		t.Errorf("Summary = %+v", sum)
	}
	if sum.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", sum.ExitCode)
	}

	text := out.String()
	for _, want := range []string{
		"[fail] broken section error: invalid dimension",
		"[fail] panicky section error: panic:",
		"[OK] two",
		"[RESULT] FAIL",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunner_ParallelKeepsOrder(t *testing.T) {
	sections := make([]Section, 12)
	for i := range sections {
		sections[i] = sectionOf(fmt.Sprintf("s%02d", i), OK("section %02d", i), Warn("w%02d", i))
	}

	var seq, par bytes.Buffer
	s1 := NewRunner(WithOutput(&seq)).Run(context.Background(), sections)
	s2 := NewRunner(WithOutput(&par), WithParallel(4)).Run(context.Background(), sections)

	if s1.Checks != s2.Checks || s1.OK != s2.OK || s1.Warns != s2.Warns || s1.Fails != s2.Fails {
		t.Errorf("parallel summary %+v differs from sequential %+v", s2, s1)
	}

	// Everything but the timing lines must be identical.
	strip := func(s string) string {
		var keep []string
		for _, line := range strings.Split(s, "\n") {
			if strings.HasPrefix(line, "[done]") || strings.HasPrefix(line, "[RESULT]") {
				continue
			}
			keep = append(keep, line)
		}
		return strings.Join(keep, "\n")
	}
	if strip(seq.String()) != strip(par.String()) {
		t.Errorf("parallel output order differs:\n%s\n---\n%s", seq.String(), par.String())
	}
}

func TestRunner_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	ran := false
	sum := NewRunner(WithOutput(&out)).Run(ctx, []Section{{Name: "late", Run: func(context.Context) ([]Result, error) {
		ran = true
		return nil, nil
	}}})

	if ran {
		t.Error("section ran after cancellation")
	}
	if sum.Fails != 1 || !strings.Contains(out.String(), "late section not run") {
		t.Errorf("Summary = %+v, output:\n%s", sum, out.String())
	}
}

func TestRunner_NilRun(t *testing.T) {
	sum := NewRunner().Run(context.Background(), []Section{{Name: "empty"}})
	if sum.Fails != 1 {
		t.Errorf("Fails = %d, want 1", sum.Fails)
	}
}
