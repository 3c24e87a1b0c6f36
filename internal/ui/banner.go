package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBanner draws the boxed run verdict: a bold title and optional detail
// lines, bordered in the pass or fail color of the active theme.
func RenderBanner(title string, ok bool, details ...string) string {
	theme := GetCurrentTheme()
	color := theme.Fail
	if ok {
		color = theme.Pass
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(color)
	detailStyle := lipgloss.NewStyle().Foreground(theme.Dim)

	lines := []string{titleStyle.Render(title)}
	for _, d := range details {
		lines = append(lines, detailStyle.Render(d))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
	return box.Render(strings.Join(lines, "\n"))
}
