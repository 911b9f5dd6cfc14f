// Package style holds lipgloss render helpers shared by the CLI and the TUI.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kinoteka-cli/kinoteka/color"
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

func colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a renderer that paints the foreground.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return colored(c, "").Render(s) }
}

// Truncate returns a renderer that fits its input into max cells.
func Truncate(max int) func(string) string {
	return func(s string) string { return New().Width(max).MaxWidth(max).Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

// Title renders a list or card header.
var Title = func(s string) string {
	return colored(Base, AccentColor).Bold(true).Padding(0, 1).Render(s)
}

// ErrorTitle renders the error screen header.
var ErrorTitle = func(s string) string {
	return colored(color.New("230"), color.Red).Padding(0, 1).Render(s)
}
