package player

import (
	"fmt"
	"os/exec"
	"sync"
)

// IINA plays through the macOS IINA app. It exposes no IPC,
// so positions cannot be observed and seeking is a no-op.
type IINA struct {
	cmd    *exec.Cmd
	exited chan struct{}
	once   sync.Once
}

// NewIINA creates an idle instance.
func NewIINA() *IINA {
	return &IINA{
		exited: make(chan struct{}),
	}
}

// Play hands url to IINA through LaunchServices.
func (m *IINA) Play(rawURL string, title string, headers map[string]string) error {
	safeURL, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	// IINA forwards mpv options given after --args with an --mpv- prefix
	args := []string{"-W", "-a", "IINA", safeURL, "--args"}
	if title := sanitizeTitle(title); title != "" {
		args = append(args, "--mpv-force-media-title="+title)
	}

	if fields := headerFields(headers); fields != "" {
		args = append(args, "--mpv-http-header-fields="+fields)
	}

	m.cmd = exec.Command("open", args...)
	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("LaunchServices failed to invoke IINA: %w", err)
	}

	go func() {
		_ = m.cmd.Wait()
		m.once.Do(func() { close(m.exited) })
	}()

	return nil
}

func (m *IINA) Wait() <-chan struct{} {
	return m.exited
}

func (m *IINA) Seek(float64) error { return nil }

func (m *IINA) Close() error {
	if m.cmd != nil && m.cmd.Process != nil {
		_ = m.cmd.Process.Kill()
	}
	return nil
}

func (m *IINA) Socket() string { return "" }

func (m *IINA) StartIPCTicker(EventCallback) {}

func (m *IINA) StopIPCTicker() {}
