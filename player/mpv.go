package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kinoteka-cli/kinoteka/constant"
	"github.com/kinoteka-cli/kinoteka/log"
	"github.com/samber/lo"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV drives an mpv process over its JSON-IPC socket.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}

	tickerMu   sync.Mutex
	tickerStop chan struct{}

	mu sync.Mutex
}

// NewMPV creates an idle instance. Nothing is started until Play.
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
	}
}

// Play starts mpv on url.
// The file is kept open at its end so eof-reached is observable.
func (m *MPV) Play(rawURL string, title string, headers map[string]string) error {
	safeURL, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.Kinoteka, randomBytes))
	}

	m.cmd = exec.Command("mpv", mpvArgs(m.socketPath, sanitizeTitle(title), headers, safeURL)...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return nil
}

// mpvArgs builds the command line. Only session-specific flags are passed so the user's mpv.conf applies.
func mpvArgs(socketPath, title string, headers map[string]string, target string) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server=" + socketPath,
		"--force-window=yes",
		"--keep-open=yes",
	}

	if title != "" {
		args = append(args, "--force-media-title="+title, "--title="+title)
	}

	if fields := headerFields(headers); fields != "" {
		args = append(args, "--http-header-fields="+fields)
	}

	// end of options, so a target can never be read as a flag
	return append(args, "--", target)
}

// headerFields renders headers in mpv's list syntax, sorted by name.
func headerFields(headers map[string]string) string {
	names := lo.Keys(headers)
	sort.Strings(names)

	return strings.Join(lo.Map(names, func(name string, _ int) string {
		// mpv splits the list on commas
		return name + ": " + strings.ReplaceAll(headers[name], ",", "%2C")
	}), ",")
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// GetTimePos returns the current playback position in seconds.
func (m *MPV) GetTimePos() (float64, error) {
	return m.floatProperty("time-pos")
}

// GetDuration returns the duration of the loaded media in seconds.
func (m *MPV) GetDuration() (float64, error) {
	return m.floatProperty("duration")
}

// Seek moves playback to an absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute"})
	return err
}

// StartIPCTicker polls position and duration every second until the player exits.
func (m *MPV) StartIPCTicker(callback EventCallback) {
	m.tickerMu.Lock()
	defer m.tickerMu.Unlock()

	if m.tickerStop != nil {
		return
	}

	stop := make(chan struct{})
	m.tickerStop = stop
	exited := m.exited

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-exited:
				return
			case <-ticker.C:
				if dur, err := m.GetDuration(); err == nil {
					callback("duration", dur)
				}
				if pos, err := m.GetTimePos(); err == nil {
					callback("time-pos", pos)
				}
			}
		}
	}()
}

// StopIPCTicker stops the polling started by StartIPCTicker.
func (m *MPV) StopIPCTicker() {
	m.tickerMu.Lock()
	defer m.tickerMu.Unlock()

	if m.tickerStop != nil {
		close(m.tickerStop)
		m.tickerStop = nil
	}
}

// Close quits mpv, killing it if it does not exit in time, and removes the socket.
func (m *MPV) Close() error {
	m.StopIPCTicker()

	if m.socketPath == "" {
		return nil
	}

	_, _ = m.sendCommand([]interface{}{"quit"})

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

func (m *MPV) floatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget accepts http(s) URLs and local paths.
// Anything that could be parsed as an mpv option is rejected.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

// sanitizeTitle flattens a title onto a single line.
func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
