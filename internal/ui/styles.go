package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the monitor.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
	colorError     = lipgloss.Color("203") // Red
)

// Title style for the header line.
var Title = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// StateBadge style for the lifecycle state.
var StateBadge = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// CounterLabel style for progress counter names.
var CounterLabel = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ResultLine style for completed document lines.
var ResultLine = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// ErrorLine style for failed fetch lines.
var ErrorLine = lipgloss.NewStyle().
	Foreground(colorError).
	Padding(0, 1)

// DoneBadge style for terminal states.
var DoneBadge = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorSuccess).
	Padding(0, 1)

// StatusBar style for the bottom key-hint bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in the status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)
