package report

import "strconv"

// formatSeconds renders a duration in seconds at full precision for CSV
// output.
func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatCell renders a duration in seconds for the console table.
func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
