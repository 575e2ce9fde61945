package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"colbench/internal/bench"
	"colbench/internal/clickhouse"
	"colbench/internal/report"
)

var (
	methodStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	phaseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

// runBench drives both phases, aggregates the records, and writes the
// outputs. Any error discards the partial results and returns exit 1.
func runBench(stdout, stderr io.Writer) int {
	fmt.Fprintln(stdout, faintStyle.Render("colbench session "+uuid.NewString()))

	ctx := context.Background()
	runner := &bench.Runner{
		Runs:  bench.NumRuns,
		OnRun: progressPrinter(stdout, bench.NumRuns),
	}

	closed, err := runner.RunPhase(ctx, clickhouse.Methods(), bench.PhaseClosed, false)
	if err != nil {
		fmt.Fprintf(stderr, "Benchmark failed: %v\n", err)
		return ExitError
	}
	open, err := runner.RunPhase(ctx, clickhouse.OpenPhaseMethods(), bench.PhaseNotClosed, true)
	if err != nil {
		fmt.Fprintf(stderr, "Benchmark failed: %v\n", err)
		return ExitError
	}

	records := append(closed, open...)
	rows := report.Summarize(records)
	if err := report.WriteRunsCSV(report.RunsFile, records); err != nil {
		fmt.Fprintf(stderr, "Write runs: %v\n", err)
		return ExitError
	}
	if err := report.WriteSummaryCSV(report.SummaryFile, rows); err != nil {
		fmt.Fprintf(stderr, "Write summary: %v\n", err)
		return ExitError
	}

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Summary (sec):")
	fmt.Fprintln(stdout, report.RenderSummary(rows))
	return ExitOK
}

// progressPrinter returns a callback that prints one line per run.
func progressPrinter(w io.Writer, total int) bench.Progress {
	return func(rec bench.Record) {
		fmt.Fprintf(w, "%s %s run %d/%d: %.3f sec\n",
			methodStyle.Render(rec.Method),
			phaseStyle.Render(rec.Phase),
			rec.Run, total, rec.TimeSec,
		)
	}
}
