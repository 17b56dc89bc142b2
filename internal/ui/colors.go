package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	songStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))

	choiceStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedChoiceStyle = lipgloss.NewStyle().
				PaddingLeft(0).
				Foreground(lipgloss.Color("212")).
				Bold(true)

	progressStyle = lipgloss.NewStyle().
			Faint(true).
			MarginTop(1)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)
