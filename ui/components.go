package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true).
			Padding(0, 1)
)

// RenderStatusBar renders a single styled progress or success line for
// the non-interactive phases of a run.
func RenderStatusBar(message string, isSuccess bool) string {
	indicator := "▶"
	style := progressStyle
	if isSuccess {
		indicator = "✓"
		style = successStyle
	}
	return style.Render(indicator + " " + message)
}
