package player

import (
	"fmt"
	"sync"

	"github.com/kinoteka-cli/kinoteka/log"
	"github.com/kinoteka-cli/kinoteka/media"
	"github.com/samber/mo"
)

// Element is something mounted into a container: a browser frame or a native player.
type Element interface {
	Kind() media.Kind
	Source() string
	Close() error

	// Done is closed once the element stops playing.
	Done() <-chan struct{}
}

// Observable elements stream player property events.
type Observable interface {
	OnEvent(callback EventCallback)
}

// Seeker elements can jump to a position.
type Seeker interface {
	Seek(seconds float64) error
}

// MountOptions describe how a source is presented.
type MountOptions struct {
	Title string

	// Origin is the site origin passed to embedded providers.
	Origin string

	// Headers are sent by native players with every media request.
	Headers map[string]string
}

// Backend creates elements. Tests replace it to mount without launching processes.
type Backend interface {
	Frame(kind media.Kind, src string, options MountOptions) (Element, error)
	Native(url string, options MountOptions) (Element, error)
}

// Container is a named slot that holds at most one element.
type Container struct {
	name    string
	backend Backend

	mu      sync.Mutex
	current mo.Option[Element]
}

// NewContainer returns an empty container mounting through backend.
func NewContainer(name string, backend Backend) *Container {
	return &Container{
		name:    name,
		backend: backend,
		current: mo.None[Element](),
	}
}

// Name returns the container name.
func (c *Container) Name() string {
	return c.name
}

// Current returns the mounted element, if any.
func (c *Container) Current() mo.Option[Element] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Clear closes and discards the mounted element.
func (c *Container) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clear()
}

func (c *Container) clear() error {
	element, ok := c.current.Get()
	if !ok {
		return nil
	}

	c.current = mo.None[Element]()
	if err := element.Close(); err != nil {
		log.Warnf("%s: close %s element: %s", c.name, element.Kind(), err)
		return err
	}
	return nil
}

// Mount replaces whatever the container holds with an element for url.
// Embeddable kinds become a frame with an autoplaying embed URL, anything else plays natively.
// An absent container is a no-op.
func Mount(kind media.Kind, url string, container mo.Option[*Container], options MountOptions) (mo.Option[Element], error) {
	c, ok := container.Get()
	if !ok || c == nil {
		return mo.None[Element](), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.clear()

	var (
		element Element
		err     error
	)

	if kind.Embeddable() {
		src := media.WithAutoplay(media.ToEmbed(url, options.Origin))
		element, err = c.backend.Frame(kind, src, options)
	} else {
		element, err = c.backend.Native(url, options)
	}

	if err != nil {
		return mo.None[Element](), fmt.Errorf("mount %s into %s: %w", kind, c.name, err)
	}

	log.WithField("container", c.name).Infof("mounted %s element", kind)
	c.current = mo.Some(element)
	return c.current, nil
}
