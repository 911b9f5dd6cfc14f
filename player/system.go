package player

import (
	"fmt"

	"github.com/kinoteka-cli/kinoteka/key"
	"github.com/kinoteka-cli/kinoteka/media"
	"github.com/kinoteka-cli/kinoteka/open"
	"github.com/kinoteka-cli/kinoteka/where"
	"github.com/spf13/viper"
)

// System is the real backend: frames open in a browser, files in the configured native player.
type System struct {
	// Browser opens frame pages. The system handler is used when empty.
	Browser string

	// Player names the native player, see New.
	Player string

	opener    func(url, app string) error
	newPlayer func(name string) (Player, error)
	frames    func() string
}

// NewSystem returns a backend configured from player.browser and player.default.
func NewSystem() *System {
	return &System{
		Browser:   viper.GetString(key.PlayerBrowser),
		Player:    viper.GetString(key.Player),
		opener:    open.StartWith,
		newPlayer: New,
		frames:    where.Frames,
	}
}

// Frame writes the hosting page and opens it.
func (s *System) Frame(kind media.Kind, src string, options MountOptions) (Element, error) {
	frame, err := writeFrame(s.frames(), kind, src, options.Title)
	if err != nil {
		return nil, err
	}

	if err := s.opener(open.FileURL(frame.Page()), s.Browser); err != nil {
		_ = frame.Close()
		return nil, fmt.Errorf("open browser: %w", err)
	}

	return frame, nil
}

// Native starts the configured player on url.
func (s *System) Native(url string, options MountOptions) (Element, error) {
	p, err := s.newPlayer(s.Player)
	if err != nil {
		return nil, err
	}

	native, err := startNative(p, url, options)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", s.Player, err)
	}

	return native, nil
}
