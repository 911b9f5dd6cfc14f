package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kinoteka-cli/kinoteka/api"
	"github.com/kinoteka-cli/kinoteka/color"
	"github.com/kinoteka-cli/kinoteka/icon"
	"github.com/kinoteka-cli/kinoteka/style"
	"github.com/kinoteka-cli/kinoteka/util"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case historyState:
		output = listExtraPaddingStyle.Render(b.historyC.View())
	case searchState:
		output = b.viewSearch()
	case resultsState:
		output = listExtraPaddingStyle.Render(b.resultsC.View())
	case cardState:
		output = b.viewCard()
	case seasonsState:
		output = listExtraPaddingStyle.Render(b.seasonsC.View())
	case episodesState:
		output = listExtraPaddingStyle.Render(b.episodesC.View())
	case ratingState:
		output = b.viewRating()
	case playingState:
		output = b.viewPlaying()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Search"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok && suggestion != b.inputC.Value() {
		lines = append(lines, "", style.Faint(fmt.Sprintf("%s %s", icon.Get(icon.Search), suggestion)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewCard() string {
	if b.session == nil {
		return b.renderLines(true, nil)
	}

	content, ok := b.session.Content().Get()
	if !ok {
		return b.renderLines(true, []string{
			style.ErrorTitle("Unavailable"),
			"",
			icon.Get(icon.Fail) + " Content could not be loaded",
		})
	}

	lines := []string{style.Title(content.Title), ""}

	meta := []string{string(content.Type)}
	if content.ReleaseYear > 0 {
		meta = append(meta, fmt.Sprint(content.ReleaseYear))
	}
	if b.rating != nil {
		meta = append(meta, style.Fg(style.Yellow)(icon.Get(icon.Star)+" "+b.rating.Label()))
	}
	if b.favorite != nil && b.favorite.Favorite() {
		meta = append(meta, style.Fg(style.Red)(icon.Get(icon.Heart)))
	}
	if content.IsFree {
		meta = append(meta, style.Fg(style.SuccessColor)("free"))
	} else if !b.session.Eligible() {
		meta = append(meta, style.Faint(icon.Get(icon.Lock)+" purchase required"))
	}
	lines = append(lines, strings.Join(meta, " • "))

	if content.Description != "" {
		lines = append(lines, "", wrap.String(wordwrap.String(content.Description, b.width), b.width))
	}

	if content.Type == api.Series && b.session.Eligible() {
		lines = append(lines, "", style.Faint(util.Quantify(len(b.session.Seasons()), "season", "seasons")))
	}

	if b.playing() {
		lines = append(lines, "", style.Fg(color.Orange)(icon.Get(icon.Play)+" playing"))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewRating() string {
	fill := b.rating.Fill()

	return b.renderLines(
		true,
		[]string{
			style.Title("Rate"),
			"",
			b.ratingC.ViewAs(float64(fill) / 100),
			"",
			fmt.Sprintf("%s %d / 5  %s", icon.Get(icon.Star), (b.hover+1)/2, style.Faint("average "+b.rating.Label())),
		},
	)
}

func (b *statefulBubble) viewPlaying() string {
	var title string
	if content, ok := b.session.Content().Get(); ok {
		title = content.Title
	}

	if season, ok := b.session.SelectedSeason().Get(); ok {
		title = fmt.Sprintf("%s • %s", title, season.Label)
	}

	status := "starting"
	if reporter, ok := b.session.Reporter().Get(); ok {
		if position := reporter.LastReported(); position > 0 {
			status = fmt.Sprintf("reported at %d:%02d", position/60, position%60)
		}
	}

	return b.renderLines(
		true,
		[]string{
			style.Title("Now Playing"),
			"",
			style.Truncate(b.width)(fmt.Sprintf("%s %s", icon.Get(icon.Play), style.Fg(color.Purple)(title))),
			"",
			style.Truncate(b.width)(b.spinnerC.View() + " " + status),
		},
	)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprint(b.lastError))
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			wrap.String(errorBody, b.width),
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
