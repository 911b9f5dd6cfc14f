// Package open hands pages and player frames to the desktop browser.
package open

import (
	"errors"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kinoteka-cli/kinoteka/constant"
)

// ErrUnsupported is returned on systems without a known URL handler.
var ErrUnsupported = errors.New("no url handler for " + runtime.GOOS)

// Command builds the process that opens target.
// An empty app means the system default handler.
func Command(target, app string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case constant.Windows:
		if app == "" {
			rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
			return exec.Command(rundll, "url.dll,FileProtocolHandler", target), nil
		}
		// start treats & as a command separator
		return exec.Command("cmd", "/C", "start", "", app, strings.ReplaceAll(target, "&", "^&")), nil
	case constant.Darwin:
		if app == "" {
			return exec.Command("open", target), nil
		}
		return exec.Command("open", "-a", app, target), nil
	case constant.Linux:
		if app == "" {
			return exec.Command("xdg-open", target), nil
		}
		return exec.Command(app, target), nil
	case constant.Android:
		if app == "" {
			return exec.Command("termux-open", target), nil
		}
		return exec.Command("termux-open", "--choose", target), nil
	default:
		return nil, ErrUnsupported
	}
}

// Start opens target with the default handler without waiting for it.
func Start(target string) error {
	return StartWith(target, "")
}

// StartWith opens target with app without waiting for it.
func StartWith(target, app string) error {
	cmd, err := Command(target, app)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// FileURL turns a local path into a file:// URL that browsers accept on every platform.
func FileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		// windows drive letters
		abs = "/" + abs
	}

	return (&url.URL{Scheme: "file", Path: abs}).String()
}
