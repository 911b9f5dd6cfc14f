package player

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/kinoteka-cli/kinoteka/filesystem"
	"github.com/kinoteka-cli/kinoteka/key"
	"github.com/kinoteka-cli/kinoteka/media"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

type fakeElement struct {
	kind   media.Kind
	src    string
	closed bool
	done   chan struct{}
}

func (e *fakeElement) Kind() media.Kind      { return e.kind }
func (e *fakeElement) Source() string        { return e.src }
func (e *fakeElement) Done() <-chan struct{} { return e.done }
func (e *fakeElement) Close() error {
	if !e.closed {
		e.closed = true
		close(e.done)
	}
	return nil
}

type fakeBackend struct {
	mounted []*fakeElement
	err     error
}

func (b *fakeBackend) Frame(kind media.Kind, src string, _ MountOptions) (Element, error) {
	return b.mount(kind, src)
}

func (b *fakeBackend) Native(url string, _ MountOptions) (Element, error) {
	return b.mount(media.File, url)
}

func (b *fakeBackend) mount(kind media.Kind, src string) (Element, error) {
	if b.err != nil {
		return nil, b.err
	}
	e := &fakeElement{kind: kind, src: src, done: make(chan struct{})}
	b.mounted = append(b.mounted, e)
	return e, nil
}

func TestMount(t *testing.T) {
	Convey("Given an absent container", t, func() {
		element, err := Mount(media.YouTube, "https://youtu.be/abc", mo.None[*Container](), MountOptions{})

		Convey("Mount should be a no-op", func() {
			So(err, ShouldBeNil)
			So(element.IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("Given a container", t, func() {
		backend := &fakeBackend{}
		container := NewContainer("player", backend)
		options := MountOptions{Origin: "https://kino.example.com"}

		Convey("A youtube source should mount an autoplaying embed frame", func() {
			element, err := Mount(media.YouTube, "https://www.youtube.com/watch?v=abc123XYZ", mo.Some(container), options)
			So(err, ShouldBeNil)

			src := element.MustGet().Source()
			So(element.MustGet().Kind(), ShouldEqual, media.YouTube)
			So(src, ShouldStartWith, "https://www.youtube-nocookie.com/embed/abc123XYZ?")
			So(src, ShouldEndWith, "&autoplay=1")
		})

		Convey("A rutube embed should not get autoplay twice", func() {
			element, err := Mount(media.Rutube, "https://rutube.ru/video/0123456789abcdef0123456789abcdef/", mo.Some(container), options)
			So(err, ShouldBeNil)
			So(strings.Count(element.MustGet().Source(), "autoplay=1"), ShouldEqual, 1)
		})

		Convey("A file should mount natively with the raw url", func() {
			element, err := Mount(media.File, "https://cdn.example.com/m.mp4", mo.Some(container), options)
			So(err, ShouldBeNil)
			So(element.MustGet().Kind(), ShouldEqual, media.File)
			So(element.MustGet().Source(), ShouldEqual, "https://cdn.example.com/m.mp4")
		})

		Convey("Mounting twice should close the prior element and keep exactly one", func() {
			_, _ = Mount(media.File, "https://cdn.example.com/a.mp4", mo.Some(container), options)
			_, _ = Mount(media.YouTube, "https://youtu.be/abc", mo.Some(container), options)

			So(backend.mounted, ShouldHaveLength, 2)
			So(backend.mounted[0].closed, ShouldBeTrue)
			So(backend.mounted[1].closed, ShouldBeFalse)
			So(container.Current().MustGet(), ShouldEqual, backend.mounted[1])
		})

		Convey("A failing backend should leave the container empty", func() {
			_, _ = Mount(media.File, "https://cdn.example.com/a.mp4", mo.Some(container), options)
			backend.err = errors.New("no player")

			element, err := Mount(media.File, "https://cdn.example.com/b.mp4", mo.Some(container), options)
			So(err, ShouldNotBeNil)
			So(element.IsAbsent(), ShouldBeTrue)
			So(container.Current().IsAbsent(), ShouldBeTrue)
			So(backend.mounted[0].closed, ShouldBeTrue)
		})

		Convey("Clear should close the mounted element", func() {
			_, _ = Mount(media.File, "https://cdn.example.com/a.mp4", mo.Some(container), options)
			So(container.Clear(), ShouldBeNil)
			So(container.Current().IsAbsent(), ShouldBeTrue)
			So(backend.mounted[0].closed, ShouldBeTrue)
		})
	})
}

func TestSystemFrame(t *testing.T) {
	Convey("Given the system backend with a recording opener", t, func() {
		var opened []string
		backend := &System{
			Browser: "firefox",
			opener: func(url, app string) error {
				opened = append(opened, app+" "+url)
				return nil
			},
			frames: func() string { return "/frames" },
		}

		Convey("Frame should write a page hosting the provider frame and open it", func() {
			src := "https://www.youtube-nocookie.com/embed/abc?rel=0&autoplay=1"
			element, err := backend.Frame(media.YouTube, src, MountOptions{Title: "Stalker <1979>"})
			So(err, ShouldBeNil)

			frame := element.(*Frame)
			page, err := filesystem.API().ReadFile(frame.Page())
			So(err, ShouldBeNil)

			html := string(page)
			So(html, ShouldContainSubstring, "youtube-nocookie.com/embed/abc?rel=0&amp;autoplay=1")
			So(html, ShouldContainSubstring, "allowfullscreen")
			So(html, ShouldContainSubstring, `allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share"`)
			So(html, ShouldContainSubstring, `referrerpolicy="strict-origin-when-cross-origin"`)
			So(html, ShouldContainSubstring, "Stalker &lt;1979&gt;")

			So(opened, ShouldHaveLength, 1)
			So(opened[0], ShouldStartWith, "firefox file://")

			Convey("Closing it should remove the page", func() {
				So(frame.Close(), ShouldBeNil)
				exists, _ := filesystem.API().Exists(frame.Page())
				So(exists, ShouldBeFalse)

				select {
				case <-frame.Done():
				default:
					So("frame still running", ShouldBeEmpty)
				}
			})
		})

		Convey("A failing opener should surface the error and clean up", func() {
			backend.opener = func(string, string) error { return errors.New("no browser") }
			_, err := backend.Frame(media.Rutube, "https://rutube.ru/play/embed/x/", MountOptions{})
			So(err, ShouldNotBeNil)
		})
	})
}

type fakePlayer struct {
	mu      sync.Mutex
	played  string
	seeks   []float64
	closed  bool
	playErr error
	exited  chan struct{}
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{exited: make(chan struct{})}
}

func (p *fakePlayer) Play(url, _ string, _ map[string]string) error {
	p.played = url
	return p.playErr
}
func (p *fakePlayer) Socket() string               { return "" }
func (p *fakePlayer) StartIPCTicker(EventCallback) {}
func (p *fakePlayer) StopIPCTicker()               {}
func (p *fakePlayer) Wait() <-chan struct{}        { return p.exited }
func (p *fakePlayer) Seek(seconds float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seeks = append(p.seeks, seconds)
	return nil
}
func (p *fakePlayer) Close() error {
	if !p.closed {
		p.closed = true
		close(p.exited)
	}
	return nil
}

func TestNative(t *testing.T) {
	Convey("Given a native element on a fake player", t, func() {
		p := newFakePlayer()
		native, err := startNative(p, "https://cdn.example.com/m.mp4", MountOptions{Title: "m"})
		So(err, ShouldBeNil)
		Reset(func() { _ = native.Close() })

		So(p.played, ShouldEqual, "https://cdn.example.com/m.mp4")

		Convey("Events should reach every subscriber", func() {
			var got []string
			native.OnEvent(func(property string, _ interface{}) { got = append(got, property) })
			native.dispatch("time-pos", 1.0)
			native.dispatch("eof-reached", true)
			So(got, ShouldResemble, []string{"time-pos", "eof-reached"})
		})

		Convey("Seek should wait until the media reports a position", func() {
			native.dispatch("time-pos", 0.5)
			So(native.Seek(120), ShouldBeNil)
			So(p.seeks, ShouldResemble, []float64{120})
		})

		Convey("The element should be done when the player exits", func() {
			_ = p.Close()
			<-native.Done()
			So(native.Seek(10), ShouldNotBeNil)
		})
	})

	Convey("Given a player that fails to start", t, func() {
		p := newFakePlayer()
		p.playErr = errors.New("mpv not found")

		_, err := startNative(p, "https://cdn.example.com/m.mp4", MountOptions{})
		So(err, ShouldNotBeNil)
	})
}

func TestResume(t *testing.T) {
	Convey("Given resume is enabled at 90%", t, func() {
		viper.Set(key.PlayerResume, true)
		viper.Set(key.PlayerCompletionPercentage, 90)

		Convey("A position in the middle should resume", func() {
			So(ShouldResume(600, 3600), ShouldBeTrue)
		})

		Convey("Zero or almost finished positions should not", func() {
			So(ShouldResume(0, 3600), ShouldBeFalse)
			So(ShouldResume(3300, 3600), ShouldBeFalse)
		})

		Convey("An unknown duration should resume any positive position", func() {
			So(ShouldResume(42, 0), ShouldBeTrue)
		})

		Convey("Resume should seek the element", func() {
			p := newFakePlayer()
			native, _ := startNative(p, "f.mp4", MountOptions{})
			defer native.Close()
			native.dispatch("time-pos", 1.0)

			resumed, err := Resume(native, 600, 3600)
			So(err, ShouldBeNil)
			So(resumed, ShouldBeTrue)
			So(p.seeks, ShouldResemble, []float64{600})
		})
	})

	Convey("Given resume is disabled", t, func() {
		viper.Set(key.PlayerResume, false)
		Reset(func() { viper.Set(key.PlayerResume, true) })

		So(ShouldResume(600, 3600), ShouldBeFalse)
	})
}

func TestSanitize(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		_, err := sanitizeMediaTarget("--script=evil.lua")
		So(err, ShouldNotBeNil)

		_, err = sanitizeMediaTarget("ftp://example.com/a.mp4")
		So(err, ShouldNotBeNil)

		target, err := sanitizeMediaTarget(" https://cdn.example.com/a.mp4 ")
		So(err, ShouldBeNil)
		So(target, ShouldEqual, "https://cdn.example.com/a.mp4")
	})

	Convey("sanitizeTitle should flatten whitespace", t, func() {
		So(sanitizeTitle(" Dark\nS01\tE01\x00 "), ShouldEqual, "Dark S01 E01")
	})

	Convey("mpvArgs should end options before the target", t, func() {
		args := mpvArgs("/tmp/s.sock", "Dark", map[string]string{"Referer": "https://kino.example.com/", "Cookie": "a=1,b=2"}, "https://cdn.example.com/a.mp4")
		So(args[len(args)-2:], ShouldResemble, []string{"--", "https://cdn.example.com/a.mp4"})
		So(args, ShouldContain, "--keep-open=yes")
		So(args, ShouldContain, "--http-header-fields=Cookie: a=1%2Cb=2,Referer: https://kino.example.com/")
	})
}

func TestNew(t *testing.T) {
	Convey("New should resolve player names", t, func() {
		p, err := New("MPV")
		So(err, ShouldBeNil)
		So(p, ShouldHaveSameTypeAs, &MPV{})

		_, err = New("vlc")
		So(err, ShouldNotBeNil)
	})
}
