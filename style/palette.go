package style

import "github.com/charmbracelet/lipgloss"

// Screen palette. Warm amber accents over a dark auditorium base.
var (
	Base     = lipgloss.Color("#16161d")
	Text     = lipgloss.Color("#e6e1d6")
	Muted    = lipgloss.Color("#7d7a73")
	Red      = lipgloss.Color("#e5596b")
	Peach    = lipgloss.Color("#f4a261")
	Yellow   = lipgloss.Color("#f6c453")
	Green    = lipgloss.Color("#8fce8a")
	Blue     = lipgloss.Color("#7aa2f7")
	Lavender = lipgloss.Color("#b7a6f0")
)

var (
	AccentColor    = Yellow
	SecondaryColor = Lavender
	SuccessColor   = Green
	FaintColor     = Muted
)
