package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kinoteka-cli/kinoteka/api"
	"github.com/kinoteka-cli/kinoteka/favorite"
	"github.com/kinoteka-cli/kinoteka/history"
	"github.com/kinoteka-cli/kinoteka/internal/ui"
	"github.com/kinoteka-cli/kinoteka/log"
	"github.com/kinoteka-cli/kinoteka/query"
	"github.com/kinoteka-cli/kinoteka/rating"
	"github.com/kinoteka-cli/kinoteka/session"
	"github.com/kinoteka-cli/kinoteka/util"
	"github.com/samber/lo"
)

type cardLoadedMsg struct {
	session *session.Session
	err     error
}

type searchDoneMsg struct {
	query   string
	results []api.ContentRef
}

type action int

const (
	playAction action = iota + 1
	trailerAction
	buyAction
	rateAction
	favoriteAction
	favoriteLoadAction
)

type actionDoneMsg struct {
	action action
	err    error
}

type playbackTickMsg time.Time

func (b *statefulBubble) loadHistory() (tea.Cmd, error) {
	records, err := history.List()
	if err != nil {
		return nil, err
	}

	items := lo.Map(records, func(r *history.Record, _ int) list.Item {
		return &listItem{internal: r}
	})

	return b.historyC.SetItems(items), nil
}

func (b *statefulBubble) waitForAlert() tea.Cmd {
	return func() tea.Msg {
		return ui.NotificationMsg(<-b.alerts)
	}
}

func (b *statefulBubble) openCard(input string) tea.Cmd {
	b.closeSession()

	s := session.New(b.client, input, session.Options{
		Backend:       b.backend,
		Alerter:       b.alerter(),
		Origin:        b.client.Origin(),
		Authenticated: b.authenticated,
	})

	ctx := b.ctx
	return func() tea.Msg {
		err := s.Run(ctx)
		return cardLoadedMsg{session: s, err: err}
	}
}

// onCardLoaded attaches the widgets of a loaded card.
func (b *statefulBubble) onCardLoaded(msg cardLoadedMsg) tea.Cmd {
	if b.state != loadingState {
		_ = msg.session.Close()
		return nil
	}

	b.stopLoading()

	if msg.session.Stage() == session.Aborted {
		b.raiseError(msg.err)
		return nil
	}

	b.session = msg.session
	b.newState(cardState)

	content, ok := msg.session.Content().Get()
	if !ok {
		log.Errorf("card degraded: %s", msg.err)
		return ui.Notify("Failed to load content")
	}

	b.rating = rating.New(content.ID, b.client, content.AvgRating, b.alerter(), nil)
	b.favorite = favorite.New(content.ID, b.client, b.alerter())

	if !b.session.Controls().Favorite {
		return nil
	}

	toggle := b.favorite
	ctx := b.ctx
	return func() tea.Msg {
		toggle.Load(ctx)
		return actionDoneMsg{action: favoriteLoadAction}
	}
}

func (b *statefulBubble) search(q string) tea.Cmd {
	client := b.client
	kind := b.options.Kind
	ctx := b.ctx

	return func() tea.Msg {
		results, err := client.Search(ctx, q, kind)
		if err != nil {
			return err
		}

		weight := 1
		if len(results) > 0 && strings.EqualFold(results[0].Title, strings.TrimSpace(q)) {
			weight = 2
		}

		if err := query.Remember(q, weight); err != nil {
			log.Warnf("remember query: %s", err)
		}

		return searchDoneMsg{query: q, results: results}
	}
}

// run executes a card action off the update loop. Actions never overlap;
// a key pressed while one is in flight is ignored.
func (b *statefulBubble) run(a action, f func(ctx context.Context) error) tea.Cmd {
	if !b.guard.TryAcquire() {
		return nil
	}

	ctx := b.ctx
	return func() tea.Msg {
		defer b.guard.Release()
		return actionDoneMsg{action: a, err: f(ctx)}
	}
}

func (b *statefulBubble) playMovie() tea.Cmd {
	s := b.session
	return b.run(playAction, s.PlayMovie)
}

func (b *statefulBubble) playEpisode(season, episode int) tea.Cmd {
	s := b.session
	return b.run(playAction, func(ctx context.Context) error {
		return s.PlayEpisode(ctx, season, episode)
	})
}

func (b *statefulBubble) playTrailer() tea.Cmd {
	s := b.session
	return b.run(trailerAction, s.PlayTrailer)
}

func (b *statefulBubble) buy() tea.Cmd {
	s := b.session
	return b.run(buyAction, s.Buy)
}

// rate submits through the widget, which owns its busy guard.
func (b *statefulBubble) rate(half int) tea.Cmd {
	w := b.rating
	ctx := b.ctx
	return func() tea.Msg {
		err := w.Click(ctx, half)
		if errors.Is(err, util.ErrBusy) {
			return nil
		}
		return actionDoneMsg{action: rateAction, err: err}
	}
}

func (b *statefulBubble) toggleFavorite() tea.Cmd {
	toggle := b.favorite
	ctx := b.ctx
	return func() tea.Msg {
		err := toggle.Click(ctx)
		if errors.Is(err, util.ErrBusy) {
			return nil
		}
		return actionDoneMsg{action: favoriteAction, err: err}
	}
}

func tickPlayback() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return playbackTickMsg(t)
	})
}

// playing reports whether the player container holds an element that is still running.
func (b *statefulBubble) playing() bool {
	if b.session == nil {
		return false
	}

	element, ok := b.session.Player().Current().Get()
	if !ok {
		return false
	}

	select {
	case <-element.Done():
		return false
	default:
		return true
	}
}
