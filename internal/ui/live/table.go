package live

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// defaultColumns returns the page table layout.
func defaultColumns() []table.Column {
	return columnsForWidth(100)
}

// columnsForWidth sizes columns to the terminal, keeping the page column
// flexible.
func columnsForWidth(width int) []table.Column {
	fixed := 10 + 10 + 10
	page := width - fixed - 6
	if page < 20 {
		page = 20
	}
	return []table.Column{
		{Title: "Page", Width: page},
		{Title: "Status", Width: 10},
		{Title: "Questions", Width: 10},
		{Title: "Warnings", Width: 10},
	}
}

// rowsForState converts UI state into table rows.
func rowsForState(state State) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		status := row.Status
		if row.Error != "" {
			status = "failed"
		}
		rows = append(rows, table.Row{
			row.Source,
			status,
			strconv.Itoa(row.Questions),
			strconv.Itoa(row.Warnings),
		})
	}
	return rows
}
