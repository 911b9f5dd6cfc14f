package player

import (
	"errors"
	"sync"
	"time"

	"github.com/kinoteka-cli/kinoteka/log"
	"github.com/kinoteka-cli/kinoteka/media"
)

// loadTimeout bounds how long Seek waits for the media to start.
var loadTimeout = 15 * time.Second

var errNotLoaded = errors.New("media did not start in time")

// Native is a direct file playing in a native player.
type Native struct {
	player   Player
	url      string
	listener *EventListener

	mu        sync.Mutex
	callbacks []EventCallback

	loadOnce sync.Once
	loaded   chan struct{}

	doneOnce sync.Once
	done     chan struct{}
}

// startNative starts p on url and wires its events.
// Events come from an observer when the player has a socket, or from polling when observing fails.
func startNative(p Player, url string, options MountOptions) (*Native, error) {
	n := &Native{
		player: p,
		url:    url,
		loaded: make(chan struct{}),
		done:   make(chan struct{}),
	}

	if err := p.Play(url, options.Title, options.Headers); err != nil {
		return nil, err
	}

	if socket := p.Socket(); socket != "" {
		n.listener = NewEventListener(socket, n.dispatch)
		if err := n.listener.Start(); err != nil {
			log.Warnf("observe player events: %s, falling back to polling", err)
			n.listener = nil
			p.StartIPCTicker(n.dispatch)
		}
	}

	go func() {
		select {
		case <-p.Wait():
		case <-n.done:
		}
		n.finish()
	}()

	return n, nil
}

func (n *Native) Kind() media.Kind {
	return media.File
}

func (n *Native) Source() string {
	return n.url
}

// Player returns the engine behind the element.
func (n *Native) Player() Player {
	return n.player
}

// OnEvent subscribes to player property events.
func (n *Native) OnEvent(callback EventCallback) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.callbacks = append(n.callbacks, callback)
}

// Seek waits for the media to start, then jumps to seconds.
func (n *Native) Seek(seconds float64) error {
	select {
	case <-n.loaded:
	case <-n.done:
		return errors.New("player is closed")
	case <-time.After(loadTimeout):
		return errNotLoaded
	}
	return n.player.Seek(seconds)
}

// Close stops the player.
func (n *Native) Close() error {
	n.finish()
	return n.player.Close()
}

func (n *Native) Done() <-chan struct{} {
	return n.done
}

func (n *Native) finish() {
	n.doneOnce.Do(func() {
		close(n.done)
		if n.listener != nil {
			n.listener.Stop()
		}
		n.player.StopIPCTicker()
	})
}

func (n *Native) dispatch(property string, data interface{}) {
	if property == "time-pos" {
		if _, ok := data.(float64); ok {
			n.loadOnce.Do(func() { close(n.loaded) })
		}
	}

	n.mu.Lock()
	callbacks := append([]EventCallback(nil), n.callbacks...)
	n.mu.Unlock()

	for _, callback := range callbacks {
		callback(property, data)
	}
}
