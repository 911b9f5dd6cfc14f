package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/kinoteka-cli/kinoteka/color"
	"github.com/kinoteka-cli/kinoteka/style"
)

type statefulKeymap struct {
	state    state
	controls func() controlsView

	quit, forceQuit,
	confirm, back,
	remove,
	acceptSearchSuggestion,
	watch, seasons, trailer, buy, rate, favorite, openURL, stop,
	up, down, left, right,
	top, bottom,
	showHelp key.Binding
}

// controlsView is the subset of card controls the help line depends on.
type controlsView struct {
	watch, seasons, buy, trailer, rating, favorite bool
}

func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		controls: func() controlsView { return controlsView{} },
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		acceptSearchSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept search suggestion"),
		),
		watch: key.NewBinding(
			key.WithKeys("enter", "w"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("watch")),
		),
		seasons: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("seasons")),
		),
		trailer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "trailer"),
		),
		buy: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "buy"),
		),
		rate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rate"),
		),
		favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		openURL: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open page"),
		),
		stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "less"),
		),
		right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "more"),
		),
		top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// cardBindings lists only the controls the card currently shows.
func (k *statefulKeymap) cardBindings() []key.Binding {
	c := k.controls()

	var bindings []key.Binding
	if c.watch {
		bindings = append(bindings, k.watch)
	}
	if c.seasons {
		bindings = append(bindings, k.seasons)
	}
	if c.trailer {
		bindings = append(bindings, k.trailer)
	}
	if c.buy {
		bindings = append(bindings, k.buy)
	}
	if c.rating {
		bindings = append(bindings, k.rate)
	}
	if c.favorite {
		bindings = append(bindings, k.favorite)
	}

	return append(bindings, k.openURL, k.back)
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case loadingState:
		return to2(h(k.forceQuit, k.back))
	case historyState:
		return to2(h(k.confirm, k.remove, k.back))
	case searchState:
		return to2(h(k.confirm, k.acceptSearchSuggestion, k.forceQuit))
	case resultsState, seasonsState:
		return to2(h(k.confirm, k.back))
	case episodesState:
		return to2(h(withDescription(k.confirm, "play"), k.back))
	case cardState:
		return to2(k.cardBindings())
	case ratingState:
		return to2(h(k.left, k.right, withDescription(k.confirm, "submit"), k.back))
	case playingState:
		return to2(h(k.stop, k.back, k.forceQuit))
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:             k.up,
		CursorDown:           k.down,
		NextPage:             k.right,
		PrevPage:             k.left,
		GoToStart:            k.top,
		GoToEnd:              k.bottom,
		ClearFilter:          k.back,
		CancelWhileFiltering: k.back,
		AcceptWhileFiltering: k.confirm,
		ShowFullHelp:         k.showHelp,
		CloseFullHelp:        k.showHelp,
		Quit:                 k.quit,
		ForceQuit:            k.forceQuit,
	}
}

func withDescription(k key.Binding, description string) key.Binding {
	return key.NewBinding(
		key.WithKeys(k.Keys()...),
		key.WithHelp(k.Help().Key, description),
	)
}
