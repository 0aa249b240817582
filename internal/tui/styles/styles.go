// Package styles holds the lipgloss palette shared by the terminal views.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#84CC16") // Lime
	AccentColor    = lipgloss.Color("#FBBF24") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	TextColor      = lipgloss.Color("#F9FAFB")
	SelectionColor = lipgloss.Color("#365314") // Dark lime
	BorderColor    = lipgloss.Color("#6B7280")

	// Convenience styles for colors
	Primary = lipgloss.NewStyle().Foreground(PrimaryColor)
	Accent  = lipgloss.NewStyle().Foreground(AccentColor)
	Error   = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted   = lipgloss.NewStyle().Foreground(MutedColor)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	// Section tabs
	TabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(SelectionColor).
			Padding(0, 1)

	TabInactive = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 1)

	// Filter trigger button; the active variant is used while filters are set
	Trigger = lipgloss.NewStyle().
		Foreground(MutedColor)

	TriggerActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	// Panel is the bordered filter dropdown
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Padding(0, 1)

	// Focused marks the row under keyboard focus
	Focused = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor)

	Selected = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(SelectionColor)

	Button = lipgloss.NewStyle().
		Foreground(MutedColor)

	ButtonFocused = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	// Detail pane
	Detail = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(BorderColor).
		PaddingLeft(1)

	Label = lipgloss.NewStyle().
		Foreground(MutedColor).
		Width(18)
)
