package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kinoteka-cli/kinoteka/constant"
	"github.com/kinoteka-cli/kinoteka/favorite"
	"github.com/kinoteka-cli/kinoteka/internal/ui"
	"github.com/kinoteka-cli/kinoteka/key"
	"github.com/kinoteka-cli/kinoteka/player"
	"github.com/kinoteka-cli/kinoteka/rating"
	"github.com/kinoteka-cli/kinoteka/session"
	"github.com/kinoteka-cli/kinoteka/style"
	"github.com/kinoteka-cli/kinoteka/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// alertsBuffer bounds alerts raised between two renders; extra ones are dropped.
const alertsBuffer = 8

type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool

	// guard keeps playback and purchase actions from overlapping.
	guard util.Guard

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	inputC    textinput.Model
	historyC  list.Model
	resultsC  list.Model
	seasonsC  list.Model
	episodesC list.Model
	ratingC   progress.Model
	helpC     help.Model

	client        Client
	backend       player.Backend
	authenticated bool

	session  *session.Session
	rating   *rating.Widget
	favorite *favorite.Toggle
	hover    int

	ctx    context.Context
	cancel context.CancelFunc
	alerts chan string

	progressStatus string
	lastError      error

	width, height    int
	searchSuggestion mo.Option[string]
	notifier         *ui.Model

	options *Options
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{
		loadingState,
		errorState,
		playingState,
		ratingState,
	}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	for _, l := range []*list.Model{&b.historyC, &b.resultsC, &b.seasonsC, &b.episodesC} {
		l.SetSize(listWidth, listHeight)
		l.Help.Width = listWidth
	}

	b.ratingC.Width = min(listWidth, 40)
	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

func (b *statefulBubble) startLoading(status string) tea.Cmd {
	b.loading = true
	b.progressStatus = status
	return tea.Batch(b.spinnerC.Tick, b.resultsC.StartSpinner())
}

func (b *statefulBubble) stopLoading() {
	b.loading = false
	b.progressStatus = ""
	b.resultsC.StopSpinner()
}

// alerter forwards session and widget alerts to the notification line.
func (b *statefulBubble) alerter() session.Alerter {
	return session.AlerterFunc(func(message string) {
		select {
		case b.alerts <- message:
		default:
		}
	})
}

// controls reports the card controls for the keymap, all off without a loaded card.
func (b *statefulBubble) controls() controlsView {
	if b.session == nil {
		return controlsView{}
	}

	c := b.session.Controls()
	return controlsView{
		watch:    c.Watch,
		seasons:  c.SeriesPanel,
		buy:      c.Buy,
		trailer:  c.Trailer,
		rating:   c.Rating && b.rating != nil,
		favorite: c.Favorite && b.favorite != nil,
	}
}

func (b *statefulBubble) closeSession() {
	if b.session == nil {
		return
	}

	_ = b.session.Close()
	b.session.Wait()
	b.session = nil
	b.rating = nil
	b.favorite = nil
}

func newBubble(client Client, backend player.Backend, authenticated bool, options *Options) *statefulBubble {
	ctx, cancel := context.WithCancel(context.Background())

	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,
		client:        client,
		backend:       backend,
		authenticated: authenticated,
		ctx:           ctx,
		cancel:        cancel,
		alerts:        make(chan string, alertsBuffer),
		notifier:      &ui.Model{},
		options:       options,
	}

	type listOptions struct {
		TitleStyle mo.Option[lipgloss.Style]
	}

	makeList := func(title string, description bool, options *listOptions) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		if titleStyle, ok := options.TitleStyle.Get(); ok {
			listC.Styles.Title = titleStyle
		}
		listC.StatusMessageLifetime = time.Hour * 999
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)
		listC.SetFilteringEnabled(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Search movies and series (v%s)", constant.Version)
	bubble.inputC.CharLimit = 80
	bubble.inputC.Prompt = "> "

	bubble.ratingC = progress.New(
		progress.WithSolidFill(string(style.Yellow)),
		progress.WithoutPercentage(),
	)

	bubble.historyC = makeList("History", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Yellow).Padding(0, 1),
		),
	})
	bubble.historyC.SetStatusBarItemName("entry", "entries")

	bubble.resultsC = makeList("Results", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Lavender).Padding(0, 1),
		),
	})
	bubble.resultsC.SetStatusBarItemName("title", "titles")

	bubble.seasonsC = makeList("Seasons", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Blue).Padding(0, 1),
		),
	})
	bubble.seasonsC.SetStatusBarItemName("season", "seasons")

	bubble.episodesC = makeList("Episodes", viper.GetBool(key.TUIShowURLs), &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Peach).Padding(0, 1),
		),
	})
	bubble.episodesC.SetStatusBarItemName("episode", "episodes")

	keymap.controls = bubble.controls

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.inputC.Focus()

	return &bubble
}
