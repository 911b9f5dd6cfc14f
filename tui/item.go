package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kinoteka-cli/kinoteka/api"
	"github.com/kinoteka-cli/kinoteka/history"
	"github.com/kinoteka-cli/kinoteka/icon"
	"github.com/kinoteka-cli/kinoteka/key"
	"github.com/kinoteka-cli/kinoteka/style"
	"github.com/spf13/viper"
)

// listItem wraps search results, history records, seasons and episodes for list.Model.
type listItem struct {
	internal interface{}
	marked   bool
}

func (t *listItem) getMark() string {
	switch t.internal.(type) {
	case api.Episode:
		return lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Play))
	case api.ContentRef:
		return icon.Get(icon.Search)
	default:
		return ""
	}
}

func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case api.ContentRef:
		title = e.Title
	case *history.Record:
		title = e.Title
		if e.IsEpisode() {
			title = fmt.Sprintf("%s %s", title, style.Faint(fmt.Sprintf("S%02dE%02d", e.Season, e.Episode)))
		}
	case api.Season:
		title = e.Label
	case api.Episode:
		title = e.Label
		if e.Title != "" && e.Title != e.Label {
			title = fmt.Sprintf("%s %s", title, style.Faint(e.Title))
		}
	case string:
		title = e
	default:
		title = t.FilterValue()
	}

	if title != "" && t.marked {
		title = fmt.Sprintf("%s %s", title, t.getMark())
	}

	return
}

func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case api.ContentRef:
		var parts []string

		parts = append(parts, lipgloss.NewStyle().Foreground(style.SecondaryColor).Render(string(e.Type)))

		if e.ReleaseYear > 0 {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.FaintColor).Render(fmt.Sprint(e.ReleaseYear)))
		}

		if e.AvgRating > 0 {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.AccentColor).Render(fmt.Sprintf("★ %.1f", e.AvgRating)))
		}

		if e.IsFree {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.SuccessColor).Render("free"))
		}

		description = strings.Join(parts, " • ")
	case *history.Record:
		threshold := viper.GetFloat64(key.PlayerCompletionPercentage)
		if threshold <= 0 {
			threshold = 90
		}

		var progress string
		switch {
		case e.Completed || e.Percentage >= threshold:
			progress = lipgloss.NewStyle().Foreground(style.Green).Render("watched")
		case e.Percentage > 0:
			progress = lipgloss.NewStyle().Foreground(style.Yellow).Render(fmt.Sprintf("%.0f%%", e.Percentage))
		default:
			progress = style.Faint("started")
		}

		description = fmt.Sprintf("%s • %s", progress, style.Faint(e.UpdatedAt.Format("2006-01-02 15:04")))
	case api.Season:
		description = fmt.Sprintf("%d episodes", len(e.Episodes))
	case api.Episode:
		if viper.GetBool(key.TUIShowURLs) {
			description = e.URL
		}
	}

	return
}

func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case api.ContentRef:
		return e.Title
	case *history.Record:
		return e.Title
	case api.Season:
		return e.Label
	case api.Episode:
		return e.Label + " " + e.Title
	case string:
		return e
	default:
		return ""
	}
}
