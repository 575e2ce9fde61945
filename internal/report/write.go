package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"colbench/internal/bench"
)

// RunsFile is the per-run output written to the working directory.
const RunsFile = "runs.csv"

// SummaryFile is the aggregate output written to the working directory.
const SummaryFile = "summary.csv"

// WriteRunsCSV writes every run record to path, one row per invocation.
func WriteRunsCSV(path string, records []bench.Record) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, []string{"method", "phase", "run", "time_sec"})
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Method,
			rec.Phase,
			strconv.Itoa(rec.Run),
			formatSeconds(rec.TimeSec),
		})
	}
	return writeCSV(path, rows)
}

// WriteSummaryCSV writes the aggregated rows to path.
func WriteSummaryCSV(path string, rows []Row) error {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, []string{"method", "phase", "mean", "std", "min", "max"})
	for _, row := range rows {
		out = append(out, []string{
			row.Method,
			row.Phase,
			formatSeconds(row.Mean),
			formatSeconds(row.Std),
			formatSeconds(row.Min),
			formatSeconds(row.Max),
		})
	}
	return writeCSV(path, out)
}

// writeCSV writes rows to path, creating or truncating the file.
func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		_ = file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
