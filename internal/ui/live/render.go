package live

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the build header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	elapsed := ""
	if !state.StartedAt.IsZero() {
		elapsed = now.Sub(state.StartedAt).Round(100 * time.Millisecond).String()
	}
	line := "Build " + state.BuildID
	if elapsed != "" {
		line += " | Elapsed: " + elapsed
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the page and question counts line.
func renderSummary(state State, noColor bool) string {
	done := 0
	failed := 0
	for _, row := range state.Rows {
		switch row.Status {
		case "done":
			done++
		case "failed":
			failed++
		}
	}
	line := fmt.Sprintf("Pages: %d/%d Questions: %d Warnings: %d",
		done, len(state.Rows), state.Questions, len(state.Warnings))
	if failed > 0 {
		line += fmt.Sprintf(" Failed: %d", failed)
	}
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
