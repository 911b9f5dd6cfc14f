package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init opens the requested card, or waits for input in the starting state.
func (b *statefulBubble) Init() tea.Cmd {
	if b.options.Input != "" {
		b.setState(loadingState)
		return tea.Batch(b.startLoading("Loading content"), b.openCard(b.options.Input), b.waitForAlert())
	}

	return tea.Batch(textinput.Blink, b.waitForAlert())
}
