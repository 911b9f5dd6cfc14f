package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/kinoteka-cli/kinoteka/log"
)

// EventCallback receives mpv property changes, e.g. ("time-pos", 31.2) or ("eof-reached", true).
// Other mpv events arrive with their name and the raw event map.
type EventCallback func(property string, data interface{})

// Observed properties in the order they are registered.
var observedProperties = []string{
	"time-pos",
	"duration",
	"pause",
	"seeking",
	"eof-reached",
}

// EventListener streams property changes from a running mpv.
type EventListener struct {
	socketPath string
	callback   EventCallback

	mu        sync.Mutex
	conn      net.Conn
	stopCh    chan struct{}
	done      chan struct{}
	listening bool
}

// NewEventListener creates a listener for the mpv socket at socketPath.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
	}
}

// Start registers the observers and starts the read loop.
// Observers are bound to a connection, so they are registered on the one that is read.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	reader := bufio.NewReader(conn)
	for i, name := range observedProperties {
		if _, err := roundTrip(conn, reader, []interface{}{"observe_property", i + 1, name}, el.processEvent); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.stopCh = make(chan struct{})
	el.done = make(chan struct{})
	el.listening = true

	go el.readLoop(reader)

	log.Infof("mpv event listener started on %s", el.socketPath)
	return nil
}

// Stop closes the connection and waits for the read loop to exit.
func (el *EventListener) Stop() {
	el.mu.Lock()
	if !el.listening {
		el.mu.Unlock()
		return
	}

	close(el.stopCh)
	_ = el.conn.Close()
	el.listening = false
	done := el.done
	el.mu.Unlock()

	<-done
}

func (el *EventListener) readLoop(reader *bufio.Reader) {
	defer close(el.done)

	var pending []byte

	for {
		select {
		case <-el.stopCh:
			return
		default:
		}

		if err := el.conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
			return
		}

		line, err := reader.ReadBytes('\n')
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				pending = append(pending, line...)
				continue
			}

			select {
			case <-el.stopCh:
			default:
				log.Warnf("event listener read error: %v", err)
			}
			return
		}

		if len(pending) > 0 {
			line = append(pending, line...)
			pending = nil
		}

		el.processEvent(line)
	}
}

// processEvent dispatches a single newline-delimited mpv message.
func (el *EventListener) processEvent(line []byte) {
	var event map[string]interface{}
	if err := json.Unmarshal(line, &event); err != nil {
		return
	}

	eventType, ok := event["event"].(string)
	if !ok || el.callback == nil {
		return
	}

	if eventType == "property-change" {
		if name, _ := event["name"].(string); name != "" {
			el.callback(name, event["data"])
		}
		return
	}

	el.callback(eventType, event)
}
