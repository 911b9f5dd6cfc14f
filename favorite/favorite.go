// Package favorite implements the optimistic favorite toggle of a content card.
package favorite

import (
	"context"
	"errors"
	"sync"

	"github.com/kinoteka-cli/kinoteka/api"
	"github.com/kinoteka-cli/kinoteka/log"
	"github.com/kinoteka-cli/kinoteka/session"
	"github.com/kinoteka-cli/kinoteka/util"
)

const (
	MsgFailed  = "Failed to update favorite"
	MsgOffline = "Network unavailable"
)

// Client is the part of the service the toggle uses.
type Client interface {
	FavoriteStatus(ctx context.Context, id string) (bool, error)
	ToggleFavorite(ctx context.Context, id string) (bool, error)
}

// Toggle is the favorite control.
type Toggle struct {
	id      string
	client  Client
	alerter session.Alerter
	guard   util.Guard

	mu       sync.Mutex
	favorite bool
}

func New(id string, client Client, alerter session.Alerter) *Toggle {
	if alerter == nil {
		alerter = session.AlerterFunc(func(string) {})
	}
	return &Toggle{id: id, client: client, alerter: alerter}
}

// Load fetches the current status. Failures leave the toggle off and are only logged.
func (t *Toggle) Load(ctx context.Context) {
	favorite, err := t.client.FavoriteStatus(ctx, t.id)
	if err != nil {
		log.WithField("content", t.id).Debugf("favorite status: %s", err)
		return
	}
	t.set(favorite)
}

// Click flips the shown state at once, then asks the service to toggle.
// A failure restores the state from before the click.
func (t *Toggle) Click(ctx context.Context) error {
	if !t.guard.TryAcquire() {
		return util.ErrBusy
	}
	defer t.guard.Release()

	t.mu.Lock()
	prior := t.favorite
	t.favorite = !prior
	t.mu.Unlock()

	favorite, err := t.client.ToggleFavorite(ctx, t.id)
	if err != nil {
		t.set(prior)
		log.WithField("content", t.id).Errorf("toggle favorite: %s", err)
		if errors.Is(err, api.ErrNetwork) {
			t.alerter.Alert(MsgOffline)
		} else {
			t.alerter.Alert(MsgFailed)
		}
		return err
	}

	t.set(favorite)
	return nil
}

func (t *Toggle) set(favorite bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.favorite = favorite
}

// Favorite reports the shown state.
func (t *Toggle) Favorite() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.favorite
}

// Enabled reports whether the control accepts clicks.
func (t *Toggle) Enabled() bool {
	return !t.guard.Busy()
}
