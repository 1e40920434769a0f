package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Version is shown in the header
var Version = "dev"

func renderHeader(width int, title string) string {
	logo := "calqqy " + Version

	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")). // Pink/magenta color
		Bold(true)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorNormal))

	logoRendered := logoStyle.Render(logo)
	if title == "" || width <= 0 {
		return logoRendered
	}

	titleRendered := titleStyle.Render(title)
	gap := width - lipgloss.Width(logoRendered) - lipgloss.Width(titleRendered)
	if gap < 1 {
		return logoRendered
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		lipgloss.NewStyle().Width(gap).Render(""),
		logoRendered,
	)
}
