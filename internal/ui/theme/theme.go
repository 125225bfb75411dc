// Package theme holds the SkillBoost terminal palette and shared styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, matching the web client's plum and magenta.
var (
	Primary   = lipgloss.Color("#E91E63") // Magenta
	Secondary = lipgloss.Color("#7B1FA2") // Purple
	Accent    = lipgloss.Color("#FFB300") // Amber
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#FDF2F8")
	TextDim   = lipgloss.Color("#C4A7BC")
	BgDark    = lipgloss.Color("#2D0B26") // Plum
	BgCard    = lipgloss.Color("#3F1236")
	Border    = lipgloss.Color("#6B2A5E")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Link = lipgloss.NewStyle().
		Foreground(Accent).
		Underline(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgDark).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Badge = lipgloss.NewStyle().
		Foreground(Text).
		Background(Secondary).
		Padding(0, 1)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Primary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
