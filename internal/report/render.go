package report

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// RenderSummary renders the aggregated rows as a console table.
func RenderSummary(rows []Row) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("method", "phase", "mean", "std", "min", "max")
	for _, row := range rows {
		t.Row(
			row.Method,
			row.Phase,
			formatCell(row.Mean),
			formatCell(row.Std),
			formatCell(row.Min),
			formatCell(row.Max),
		)
	}
	return t.Render()
}
