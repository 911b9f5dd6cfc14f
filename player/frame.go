package player

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html/template"
	"path/filepath"
	"sync"

	"github.com/kinoteka-cli/kinoteka/constant"
	"github.com/kinoteka-cli/kinoteka/filesystem"
	"github.com/kinoteka-cli/kinoteka/media"
	"github.com/kinoteka-cli/kinoteka/util"
	"github.com/samber/lo"
)

var frameTemplate = lo.Must(template.New("frame").Parse(constant.FrameTemplate))

// Frame is an embedded provider player hosted on a local page.
type Frame struct {
	kind media.Kind
	src  string
	page string

	once sync.Once
	done chan struct{}
}

func (f *Frame) Kind() media.Kind {
	return f.kind
}

// Source returns the frame src.
func (f *Frame) Source() string {
	return f.src
}

// Page returns the path of the hosting page.
func (f *Frame) Page() string {
	return f.page
}

// Close removes the hosting page. The browser tab itself is left alone.
func (f *Frame) Close() error {
	var err error
	f.once.Do(func() {
		close(f.done)
		if f.page != "" {
			err = filesystem.API().Remove(f.page)
		}
	})
	return err
}

func (f *Frame) Done() <-chan struct{} {
	return f.done
}

// renderFrame renders the hosting page for src.
func renderFrame(src, title string) ([]byte, error) {
	var buf bytes.Buffer
	err := frameTemplate.Execute(&buf, struct {
		Src            template.URL
		Title          string
		Allow          string
		ReferrerPolicy string
	}{
		// src is produced by media.ToEmbed and already escaped
		Src:            template.URL(src),
		Title:          lo.Ternary(title != "", title, constant.Kinoteka),
		Allow:          constant.FrameAllow,
		ReferrerPolicy: constant.FrameReferrerPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("render frame: %w", err)
	}
	return buf.Bytes(), nil
}

// framePageName derives a stable page name so remounting the same source reuses the file.
func framePageName(title, src string) string {
	hash := sha256.Sum256([]byte(src))
	name := util.SanitizeFilename(title)
	if name == "" {
		name = "player"
	}
	return fmt.Sprintf("%s-%s.html", name, hex.EncodeToString(hash[:4]))
}

// writeFrame renders and stores the hosting page inside dir.
func writeFrame(dir string, kind media.Kind, src, title string) (*Frame, error) {
	page, err := renderFrame(src, title)
	if err != nil {
		return nil, err
	}

	if err := filesystem.API().MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create frames directory: %w", err)
	}

	path := filepath.Join(dir, framePageName(title, src))
	if err := filesystem.API().WriteFile(path, page, 0o644); err != nil {
		return nil, fmt.Errorf("write frame page: %w", err)
	}

	return &Frame{kind: kind, src: src, page: path, done: make(chan struct{})}, nil
}
