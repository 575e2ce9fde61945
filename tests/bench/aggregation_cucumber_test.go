//go:build cucumber

package bench

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"colbench/internal/bench"
	"colbench/internal/report"
)

// TestAggregationFeatures executes the aggregation feature scenarios
// via godog.
func TestAggregationFeatures(t *testing.T) {
	featurePath := filepath.Join("..", "..", "spec", "features", "bench", "aggregation.feature")
	suite := godog.TestSuite{
		Name:                "aggregation",
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeScenario wires step definitions for the aggregation
// feature tests.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &aggregationState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a stub method named "([^"]+)" taking (\d+) milliseconds$`, state.givenStubMethod)
	ctx.Step(`^I measure (\d+) runs in the "([^"]+)" phase$`, state.measureRuns)
	ctx.Step(`^the run table has exactly (\d+) rows$`, state.runTableHasRows)
	ctx.Step(`^the run indices are exactly 1 and 2$`, state.runIndicesAreOneAndTwo)
	ctx.Step(`^every row is tagged with method "([^"]+)" and phase "([^"]+)"$`, state.rowsTaggedWith)
	ctx.Step(`^the summary has a single group with mean near ([0-9.]+) seconds$`, state.singleGroupMeanNear)
	ctx.Step(`^the group minimum is at most the mean and the mean at most the maximum$`, state.groupStatsCoherent)
	ctx.Step(`^the recorded runs:$`, state.givenRecordedRuns)
	ctx.Step(`^I summarize the runs$`, state.summarizeRuns)
	ctx.Step(`^the summary has (\d+) groups sorted by non-decreasing mean$`, state.summarySortedGroups)
	ctx.Step(`^summarizing the same runs again yields an identical summary$`, state.summaryIdempotent)
}

// aggregationState holds scenario state for the feature tests.
type aggregationState struct {
	method  bench.Method
	records []bench.Record
	summary []report.Row
}

// reset clears state between scenarios.
func (s *aggregationState) reset() {
	s.method = bench.Method{}
	s.records = nil
	s.summary = nil
}

// givenStubMethod registers a stub of fixed duration.
func (s *aggregationState) givenStubMethod(name string, millis int) error {
	delay := time.Duration(millis) * time.Millisecond
	s.method = bench.Method{
		Name: name,
		Call: func(context.Context, bool) error {
			time.Sleep(delay)
			return nil
		},
	}
	return nil
}

// measureRuns drives the runner for the stub method.
func (s *aggregationState) measureRuns(runs int, phase string) error {
	runner := &bench.Runner{Runs: runs}
	records, err := runner.RunPhase(context.Background(), []bench.Method{s.method}, phase, false)
	if err != nil {
		return err
	}
	s.records = records
	s.summary = report.Summarize(records)
	return nil
}

// runTableHasRows asserts the record count.
func (s *aggregationState) runTableHasRows(count int) error {
	if len(s.records) != count {
		return fmt.Errorf("expected %d records, got %d", count, len(s.records))
	}
	return nil
}

// runIndicesAreOneAndTwo asserts the exact 1-based index sequence.
func (s *aggregationState) runIndicesAreOneAndTwo() error {
	for i, rec := range s.records {
		if rec.Run != i+1 {
			return fmt.Errorf("record %d has run index %d", i, rec.Run)
		}
	}
	return nil
}

// rowsTaggedWith asserts method and phase tags on every record.
func (s *aggregationState) rowsTaggedWith(method, phase string) error {
	for i, rec := range s.records {
		if rec.Method != method || rec.Phase != phase {
			return fmt.Errorf("record %d tagged %s/%s", i, rec.Method, rec.Phase)
		}
	}
	return nil
}

// singleGroupMeanNear asserts a lone summary group with a plausible
// mean for the stub duration.
func (s *aggregationState) singleGroupMeanNear(want string) error {
	target, err := strconv.ParseFloat(want, 64)
	if err != nil {
		return err
	}
	if len(s.summary) != 1 {
		return fmt.Errorf("expected 1 group, got %d", len(s.summary))
	}
	group := s.summary[0]
	if group.Mean < target || group.Mean > target+0.040 {
		return fmt.Errorf("mean %f not near %f", group.Mean, target)
	}
	if group.Std > 0.010 {
		return fmt.Errorf("std %f too large for a fixed-duration stub", group.Std)
	}
	return nil
}

// groupStatsCoherent asserts min <= mean <= max for the lone group.
func (s *aggregationState) groupStatsCoherent() error {
	if len(s.summary) == 0 {
		return fmt.Errorf("no summary groups")
	}
	group := s.summary[0]
	if group.Min > group.Mean || group.Mean > group.Max {
		return fmt.Errorf("incoherent stats: %+v", group)
	}
	return nil
}

// givenRecordedRuns parses a gherkin table into run records.
func (s *aggregationState) givenRecordedRuns(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("table needs a header and data rows")
	}
	s.records = nil
	for _, row := range table.Rows[1:] {
		if len(row.Cells) != 4 {
			return fmt.Errorf("expected 4 cells, got %d", len(row.Cells))
		}
		run, err := strconv.Atoi(row.Cells[2].Value)
		if err != nil {
			return fmt.Errorf("run index %q: %w", row.Cells[2].Value, err)
		}
		elapsed, err := strconv.ParseFloat(row.Cells[3].Value, 64)
		if err != nil {
			return fmt.Errorf("time %q: %w", row.Cells[3].Value, err)
		}
		s.records = append(s.records, bench.Record{
			Method:  row.Cells[0].Value,
			Phase:   row.Cells[1].Value,
			Run:     run,
			TimeSec: elapsed,
		})
	}
	return nil
}

// summarizeRuns aggregates the recorded runs.
func (s *aggregationState) summarizeRuns() error {
	s.summary = report.Summarize(s.records)
	return nil
}

// summarySortedGroups asserts group count and mean ordering.
func (s *aggregationState) summarySortedGroups(count int) error {
	if len(s.summary) != count {
		return fmt.Errorf("expected %d groups, got %d", count, len(s.summary))
	}
	for i := 1; i < len(s.summary); i++ {
		if s.summary[i-1].Mean > s.summary[i].Mean+1e-12 {
			return fmt.Errorf("groups %d and %d out of order", i-1, i)
		}
	}
	return nil
}

// summaryIdempotent re-aggregates and compares.
func (s *aggregationState) summaryIdempotent() error {
	again := report.Summarize(s.records)
	if !reflect.DeepEqual(s.summary, again) {
		return fmt.Errorf("aggregation not idempotent")
	}
	if math.IsNaN(again[0].Std) {
		return fmt.Errorf("std is NaN")
	}
	return nil
}
