package tui

import "github.com/charmbracelet/lipgloss"

var (
	questionStyle = lipgloss.NewStyle().
			Bold(true)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	problemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	countdownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)
