// Package bench drives timed invocations of query methods and collects
// per-run records.
package bench

import (
	"context"
	"fmt"
	"time"
)

const (
	// PhaseClosed tags runs where the connection is released before the
	// method returns.
	PhaseClosed = "closed"
	// PhaseNotClosed tags runs where the connection is deliberately left
	// open for the lifetime of the process.
	PhaseNotClosed = "not_closed"

	// NumRuns is the number of timed invocations per method and phase.
	NumRuns = 30
)

// Record is one timed invocation.
type Record struct {
	Method  string
	Phase   string
	Run     int
	TimeSec float64
}

// Method is one call path under measurement. Call opens its own
// connection, runs the fixed query, and closes the connection unless
// keepOpen is set.
type Method struct {
	Name string
	Call func(ctx context.Context, keepOpen bool) error
}

// Progress receives each record as soon as it is produced.
type Progress func(rec Record)

// Measure invokes fn and returns the wall-clock seconds it took. The
// clock is monotonic; elapsed is never negative.
func Measure(fn func() error) (float64, error) {
	start := time.Now()
	err := fn()
	return time.Since(start).Seconds(), err
}

// Runner executes warm-up and timed loops for a set of methods.
type Runner struct {
	Runs  int
	OnRun Progress
}

// RunPhase warms each method up once (untimed, connection closed, to
// absorb the first-call authentication cost), then times Runs
// invocations per method, appending records in program order. The first
// error aborts the phase and discards its partial records.
func (r *Runner) RunPhase(ctx context.Context, methods []Method, phase string, keepOpen bool) ([]Record, error) {
	runs := r.runCount()
	records := make([]Record, 0, len(methods)*runs)
	for _, m := range methods {
		if err := m.Call(ctx, false); err != nil {
			return nil, fmt.Errorf("%s warm-up: %w", m.Name, err)
		}
		for i := 1; i <= runs; i++ {
			elapsed, err := Measure(func() error {
				return m.Call(ctx, keepOpen)
			})
			if err != nil {
				return nil, fmt.Errorf("%s %s run %d: %w", m.Name, phase, i, err)
			}
			rec := Record{Method: m.Name, Phase: phase, Run: i, TimeSec: elapsed}
			records = append(records, rec)
			if r.OnRun != nil {
				r.OnRun(rec)
			}
		}
	}
	return records, nil
}

// runCount returns the configured run count, defaulting to NumRuns.
func (r *Runner) runCount() int {
	if r.Runs <= 0 {
		return NumRuns
	}
	return r.Runs
}
