// Package styles centralizes the lipgloss styles used by the timeline
// renderer.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	// Title is the session header line
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	// Step rows
	StepActive = lipgloss.NewStyle().
			Foreground(TextColor)

	StepComplete = lipgloss.NewStyle().
			Foreground(MutedColor)

	StepMarker = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	// Tab styles for parallel branches
	TabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(PrimaryColor).
			Padding(0, 2)

	TabInactive = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 2)

	// Answer is the final answer body
	Answer = lipgloss.NewStyle().
		Foreground(TextColor).
		PaddingLeft(2)

	// Citation entries under the answer
	Citation = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingLeft(2)

	// Help is the key hint footer
	Help = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)
)
