// Package tui is the interactive terminal front end: search, history and the content card.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kinoteka-cli/kinoteka/api"
	"github.com/kinoteka-cli/kinoteka/auth"
	"github.com/kinoteka-cli/kinoteka/favorite"
	"github.com/kinoteka-cli/kinoteka/player"
	"github.com/kinoteka-cli/kinoteka/rating"
	"github.com/kinoteka-cli/kinoteka/session"
)

// Options configures the terminal user interface.
type Options struct {
	// Input opens a content card right away. It is a content id or a content page URL.
	Input string

	// Continue starts from the watch history.
	Continue bool

	// Kind restricts search results to one content type.
	Kind api.ContentType
}

// Client is the service API used by the interface.
type Client interface {
	session.API
	rating.Rater
	favorite.Client

	Search(ctx context.Context, query string, kind api.ContentType) ([]api.ContentRef, error)
	Origin() string
}

// Run starts the Bubble Tea program.
func Run(options *Options) error {
	client, err := api.NewFromConfig()
	if err != nil {
		return err
	}

	_, err = auth.GetSession()
	authenticated := err == nil

	bubble := newBubble(client, player.NewSystem(), authenticated, options)
	defer bubble.closeSession()

	if options.Continue {
		if _, err := bubble.loadHistory(); err != nil {
			return err
		}
		bubble.newState(historyState)
	} else if options.Input == "" {
		bubble.newState(searchState)
	}

	_, err = tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
