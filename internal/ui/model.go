// Package ui holds the short-lived notification line shown under the terminal views.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Lifetime is how long a notification stays on screen.
const Lifetime = 3 * time.Second

var notificationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

// Model holds the current notification.
type Model struct {
	notification string
	notifiedAt   time.Time
}

// NotificationMsg shows a notification.
type NotificationMsg string

// ClearNotificationMsg clears the notification it was scheduled for.
type ClearNotificationMsg struct {
	at time.Time
}

// Notify returns a command showing message.
func Notify(message string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg(message)
	}
}

func clearAfter(at time.Time) tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{at: at}
	})
}

// Update shows notifications and clears them after Lifetime.
// A newer notification is not cleared by the timer of an older one.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = string(msg)
		m.notifiedAt = time.Now()
		return clearAfter(m.notifiedAt)
	case ClearNotificationMsg:
		if msg.at.Equal(m.notifiedAt) {
			m.notification = ""
		}
	}
	return nil
}

// Current returns the shown notification, empty when there is none.
func (m *Model) Current() string {
	return m.notification
}

// View appends the notification to the last line of content.
func (m *Model) View(content string) string {
	if m.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + notificationStyle.Render(m.notification)
	return strings.Join(lines, "\n")
}
