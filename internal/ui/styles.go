package ui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("170") // Purple
	accentColor  = lipgloss.Color("39")  // Cyan
	dimColor     = lipgloss.Color("240") // Gray
	errorColor   = lipgloss.Color("196") // Red
	warningColor = lipgloss.Color("214") // Orange

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	emptyStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	screenStyle = lipgloss.NewStyle().
			Padding(1, 2)
)
