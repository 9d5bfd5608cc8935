package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	purple = lipgloss.Color("99")  // for dividers
	pink   = lipgloss.Color("205") // for header text
	cyan   = lipgloss.Color("86")
	white  = lipgloss.Color("255")
	green  = lipgloss.Color("82")
	yellow = lipgloss.Color("220")
	red    = lipgloss.Color("196")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(pink)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(cyan)

	statStyle = lipgloss.NewStyle().
			Foreground(green).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(white)

	warnStyle = lipgloss.NewStyle().
			Foreground(yellow).
			Bold(true)

	dividerStyle = lipgloss.NewStyle().
			Foreground(purple)

	successStyle = lipgloss.NewStyle().
			Foreground(green).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(red).
			Bold(true)
)
