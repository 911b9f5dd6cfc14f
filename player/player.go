// Package player mounts media into containers: provider frames open in the browser,
// direct files play in a native player driven over mpv's JSON-IPC.
package player

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/kinoteka-cli/kinoteka/constant"
)

// Native player identifiers accepted by New.
const (
	MPVName  = "mpv"
	IINAName = "iina"
)

// Player is a native playback engine.
type Player interface {
	// Play starts playback of url. Headers are sent with every media request.
	Play(url string, title string, headers map[string]string) error

	// Seek jumps to an absolute position in seconds.
	Seek(seconds float64) error

	Close() error

	// Socket returns the IPC endpoint, empty when the engine has none.
	Socket() string

	// StartIPCTicker polls time-pos and duration once per second and reports
	// them as property events. It is the fallback when events cannot be observed.
	StartIPCTicker(callback EventCallback)
	StopIPCTicker()

	// Wait returns a channel that is closed when playback ends.
	Wait() <-chan struct{}
}

// New returns the native player registered under name.
func New(name string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case MPVName, "":
		return NewMPV(), nil
	case IINAName:
		if runtime.GOOS != constant.Darwin {
			return nil, fmt.Errorf("iina is only supported on macOS")
		}
		return NewIINA(), nil
	default:
		return nil, fmt.Errorf("unknown player %q, available: %s, %s", name, MPVName, IINAName)
	}
}
