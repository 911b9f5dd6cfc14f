package tui

import (
	"fmt"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kinoteka-cli/kinoteka/api"
	"github.com/kinoteka-cli/kinoteka/history"
	"github.com/kinoteka-cli/kinoteka/internal/ui"
	"github.com/kinoteka-cli/kinoteka/open"
	"github.com/kinoteka-cli/kinoteka/query"
	"github.com/kinoteka-cli/kinoteka/rating"
	"github.com/kinoteka-cli/kinoteka/session"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmds = append(cmds, uiCmd)
	}

	switch msg := msg.(type) {
	case ui.NotificationMsg:
		return b, tea.Batch(append(cmds, b.waitForAlert())...)
	case error:
		b.stopLoading()
		b.raiseError(msg)
		return b, tea.Batch(cmds...)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			b.cancel()
			return b, tea.Quit
		}

		if bubblesKey.Matches(msg, b.keymap.back) {
			if b.state == searchState {
				b.inputC.SetValue("")
				b.searchSuggestion = mo.None[string]()
				return b, tea.Batch(cmds...)
			}

			if b.statesHistory.Len() == 0 {
				b.cancel()
				return b, tea.Quit
			}

			switch b.state {
			case episodesState:
				b.session.BackToSeasons()
				b.episodesC.ResetSelected()
			case ratingState:
				b.rating.Leave()
			case playingState:
				_ = b.session.Player().Clear()
			case cardState:
				b.closeSession()
			}

			b.previousState()
			b.stopLoading()
			return b, tea.Batch(cmds...)
		}

		if b.loading {
			return b, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	switch b.state {
	case loadingState:
		_, cmd = b.updateLoading(msg)
	case historyState:
		_, cmd = b.updateHistory(msg)
	case searchState:
		_, cmd = b.updateSearch(msg)
	case resultsState:
		_, cmd = b.updateResults(msg)
	case cardState:
		_, cmd = b.updateCard(msg)
	case seasonsState:
		_, cmd = b.updateSeasons(msg)
	case episodesState:
		_, cmd = b.updateEpisodes(msg)
	case ratingState:
		_, cmd = b.updateRating(msg)
	case playingState:
		_, cmd = b.updatePlaying(msg)
	case errorState:
		_, cmd = b.updateError(msg)
	}

	return b, tea.Batch(append(cmds, cmd)...)
}

// handleAsync processes results that may arrive after the user navigated away.
func (b *statefulBubble) handleAsync(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case cardLoadedMsg:
		return b.onCardLoaded(msg), true
	case actionDoneMsg:
		return b.onActionDone(msg), true
	}
	return nil, false
}

func (b *statefulBubble) onActionDone(msg actionDoneMsg) tea.Cmd {
	switch msg.action {
	case playAction:
		if msg.err == nil && b.state != playingState {
			b.newState(playingState)
			return tea.Batch(b.spinnerC.Tick, tickPlayback())
		}
	case trailerAction:
		if msg.err == nil {
			return ui.Notify("Trailer opened")
		}
	case buyAction:
		if msg.err == nil {
			return ui.Notify("Purchased")
		}
	case rateAction:
		if msg.err == nil && b.state == ratingState {
			b.previousState()
		}
	}

	// Failures were already alerted by the session or the widget.
	return nil
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := b.handleAsync(msg); ok {
		return b, cmd
	}

	switch msg := msg.(type) {
	case searchDoneMsg:
		b.stopLoading()

		items := lo.Map(msg.results, func(r api.ContentRef, i int) list.Item {
			return &listItem{internal: r, marked: i == 0 && len(msg.results) > 1}
		})

		b.resultsC.Title = fmt.Sprintf("Results for %q", msg.query)
		cmd := b.resultsC.SetItems(items)
		b.resultsC.ResetSelected()
		b.newState(resultsState)
		return b, cmd
	}

	var cmd tea.Cmd
	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := b.handleAsync(msg); ok {
		return b, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.up):
			if n := len(b.historyC.Items()); n > 0 && b.historyC.Index() == 0 {
				b.historyC.Select(n - 1)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.down):
			if n := len(b.historyC.Items()); n > 0 && b.historyC.Index() == n-1 {
				b.historyC.Select(0)
				return b, nil
			}
		case bubblesKey.Matches(msg, b.keymap.remove):
			if item, ok := b.historyC.SelectedItem().(*listItem); ok {
				if err := history.Remove(item.internal.(*history.Record)); err != nil {
					b.raiseError(err)
					return b, nil
				}
				cmd, err := b.loadHistory()
				if err != nil {
					b.raiseError(err)
					return b, nil
				}
				return b, cmd
			}
		case bubblesKey.Matches(msg, b.keymap.confirm):
			if item, ok := b.historyC.SelectedItem().(*listItem); ok {
				record := item.internal.(*history.Record)
				b.newState(loadingState)
				return b, tea.Batch(b.startLoading("Loading "+record.Title), b.openCard(record.ContentID))
			}
		}
	}

	var cmd tea.Cmd
	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := b.handleAsync(msg); ok {
		return b, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion):
			if suggestion, ok := b.searchSuggestion.Get(); ok {
				b.inputC.SetValue(suggestion)
				b.inputC.CursorEnd()
				b.searchSuggestion = mo.None[string]()
			}
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			q := b.inputC.Value()
			if q == "" {
				return b, nil
			}

			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(fmt.Sprintf("Searching %q", q)), b.search(q))
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)
	b.searchSuggestion = query.Suggest(b.inputC.Value())
	return b, cmd
}

func (b *statefulBubble) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := b.handleAsync(msg); ok {
		return b, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.confirm) {
		if item, ok := b.resultsC.SelectedItem().(*listItem); ok {
			ref := item.internal.(api.ContentRef)
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading("Loading "+ref.Title), b.openCard(ref.ID))
		}
	}

	var cmd tea.Cmd
	b.resultsC, cmd = b.resultsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateCard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := b.handleAsync(msg); ok {
		return b, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || b.session == nil {
		return b, nil
	}

	controls := b.controls()

	switch {
	case controls.watch && bubblesKey.Matches(keyMsg, b.keymap.watch):
		return b, b.playMovie()
	case controls.seasons && bubblesKey.Matches(keyMsg, b.keymap.seasons):
		items := lo.Map(b.session.Seasons(), func(s api.Season, _ int) list.Item {
			return &listItem{internal: s}
		})
		cmd := b.seasonsC.SetItems(items)
		b.seasonsC.ResetSelected()
		b.newState(seasonsState)
		return b, cmd
	case controls.trailer && bubblesKey.Matches(keyMsg, b.keymap.trailer):
		return b, b.playTrailer()
	case controls.buy && bubblesKey.Matches(keyMsg, b.keymap.buy):
		return b, b.buy()
	case controls.rating && bubblesKey.Matches(keyMsg, b.keymap.rate):
		if b.rating.Busy() {
			return b, nil
		}
		b.hover = int(b.rating.Average() * 2)
		b.rating.Hover(b.hover)
		b.newState(ratingState)
	case controls.favorite && bubblesKey.Matches(keyMsg, b.keymap.favorite):
		return b, b.toggleFavorite()
	case bubblesKey.Matches(keyMsg, b.keymap.openURL):
		if err := open.Start(b.client.Origin() + "/content/" + b.session.ID() + "/"); err != nil {
			return b, ui.Notify("Failed to open page")
		}
	case bubblesKey.Matches(keyMsg, b.keymap.quit):
		b.cancel()
		return b, tea.Quit
	}

	return b, nil
}

func (b *statefulBubble) updateSeasons(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := b.handleAsync(msg); ok {
		return b, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.confirm) {
		if item, ok := b.seasonsC.SelectedItem().(*listItem); ok {
			season, err := b.session.SelectSeason(item.internal.(api.Season).Number)
			if err != nil {
				return b, ui.Notify(session.MsgSourceUnavailable)
			}

			items := lo.Map(season.Episodes, func(e api.Episode, _ int) list.Item {
				return &listItem{internal: e}
			})
			b.episodesC.Title = season.Label
			cmd := b.episodesC.SetItems(items)
			b.episodesC.ResetSelected()
			b.newState(episodesState)
			return b, cmd
		}
	}

	var cmd tea.Cmd
	b.seasonsC, cmd = b.seasonsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateEpisodes(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := b.handleAsync(msg); ok {
		return b, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.confirm) {
		season, selected := b.session.SelectedSeason().Get()
		item, ok := b.episodesC.SelectedItem().(*listItem)
		if !selected || !ok {
			return b, nil
		}

		for _, it := range b.episodesC.Items() {
			it.(*listItem).marked = it == item
		}

		return b, b.playEpisode(season.Number, item.internal.(api.Episode).Number)
	}

	var cmd tea.Cmd
	b.episodesC, cmd = b.episodesC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateRating(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := b.handleAsync(msg); ok {
		return b, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.left):
			b.hover = max(b.hover-1, 1)
			b.rating.Hover(b.hover)
		case bubblesKey.Matches(msg, b.keymap.right):
			b.hover = min(b.hover+1, rating.Steps)
			b.rating.Hover(b.hover)
		case bubblesKey.Matches(msg, b.keymap.confirm):
			return b, b.rate(max(b.hover, 1))
		}
	}

	return b, nil
}

func (b *statefulBubble) updatePlaying(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := b.handleAsync(msg); ok {
		return b, cmd
	}

	switch msg := msg.(type) {
	case playbackTickMsg:
		if !b.playing() {
			b.previousState()
			return b, ui.Notify("Playback finished")
		}
		return b, tickPlayback()
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.stop) {
			_ = b.session.Player().Clear()
			b.previousState()
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && bubblesKey.Matches(msg, b.keymap.quit) {
		b.cancel()
		return b, tea.Quit
	}

	return b, nil
}
