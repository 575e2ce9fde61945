// Package report aggregates run records into per-group descriptive
// statistics and writes the benchmark outputs.
package report

import (
	"math"
	"sort"

	"colbench/internal/bench"
)

// Row is the aggregate for one (method, phase) group.
type Row struct {
	Method string
	Phase  string
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
}

// Summarize groups records by (method, phase) and computes
// mean/std/min/max of the elapsed times, sorted by ascending mean.
// It is a pure function of its input.
func Summarize(records []bench.Record) []Row {
	type key struct {
		method string
		phase  string
	}
	groups := make(map[key][]float64)
	order := make([]key, 0)
	for _, rec := range records {
		k := key{method: rec.Method, phase: rec.Phase}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], rec.TimeSec)
	}

	rows := make([]Row, 0, len(order))
	for _, k := range order {
		times := groups[k]
		rows = append(rows, Row{
			Method: k.method,
			Phase:  k.phase,
			Mean:   mean(times),
			Std:    sampleStd(times),
			Min:    minOf(times),
			Max:    maxOf(times),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Mean != rows[j].Mean {
			return rows[i].Mean < rows[j].Mean
		}
		if rows[i].Method != rows[j].Method {
			return rows[i].Method < rows[j].Method
		}
		return rows[i].Phase < rows[j].Phase
	})
	return rows
}

// mean returns the arithmetic mean of values.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStd returns the sample standard deviation (n-1 denominator),
// or 0 for groups with fewer than two samples.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

// minOf returns the smallest value.
func minOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	out := values[0]
	for _, v := range values[1:] {
		if v < out {
			out = v
		}
	}
	return out
}

// maxOf returns the largest value.
func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	out := values[0]
	for _, v := range values[1:] {
		if v > out {
			out = v
		}
	}
	return out
}
