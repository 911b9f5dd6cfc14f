package player

import (
	"bufio"
	"encoding/json"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeMPV answers JSON-IPC commands on a unix socket.
// Every reply is preceded by an unrelated event, and observing a property emits a change for it.
type fakeMPV struct {
	listener net.Listener
	wg       sync.WaitGroup
}

func newFakeMPV(t *testing.T) (*fakeMPV, string) {
	path := filepath.Join(t.TempDir(), "mpv.sock")
	l, err := net.Listen("unix", path)
	if err != nil {
		t.Skipf("unix sockets unavailable: %s", err)
	}

	f := &fakeMPV{listener: l}
	f.wg.Add(1)
	go f.serve()
	return f, path
}

func (f *fakeMPV) serve() {
	defer f.wg.Done()
	for {
		conn, err := f.listener.Accept()
		if err != nil {
			return
		}
		f.wg.Add(1)
		go f.handle(conn)
	}
}

func (f *fakeMPV) handle(conn net.Conn) {
	defer f.wg.Done()
	defer conn.Close()

	reader := bufio.NewReader(conn)
	encoder := json.NewEncoder(conn)

	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return
		}

		var cmd struct {
			Command   []interface{} `json:"command"`
			RequestID int64         `json:"request_id"`
		}
		if json.Unmarshal(line, &cmd) != nil || len(cmd.Command) == 0 {
			continue
		}

		_ = encoder.Encode(map[string]interface{}{"event": "playback-restart"})

		switch cmd.Command[0] {
		case "get_property":
			_ = encoder.Encode(map[string]interface{}{"request_id": cmd.RequestID, "error": "success", "data": 42.5})
		case "observe_property":
			_ = encoder.Encode(map[string]interface{}{"request_id": cmd.RequestID, "error": "success"})
			name := cmd.Command[2].(string)
			var data interface{} = 31.0
			if name == "eof-reached" {
				data = true
			}
			_ = encoder.Encode(map[string]interface{}{"event": "property-change", "name": name, "data": data})
		default:
			_ = encoder.Encode(map[string]interface{}{"request_id": cmd.RequestID, "error": "invalid parameter"})
		}
	}
}

func (f *fakeMPV) Close() {
	_ = f.listener.Close()
}

func TestIPC(t *testing.T) {
	server, socket := newFakeMPV(t)
	defer server.Close()

	Convey("Given an mpv socket", t, func() {
		m := &MPV{socketPath: socket, exited: make(chan struct{})}

		Convey("Property reads should skip interleaved events", func() {
			pos, err := m.GetTimePos()
			So(err, ShouldBeNil)
			So(pos, ShouldEqual, 42.5)
		})

		Convey("mpv errors should be reported", func() {
			_, err := m.sendCommand([]interface{}{"frobnicate"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "invalid parameter")
		})
	})

	Convey("Given an event listener", t, func() {
		var (
			mu   sync.Mutex
			seen = map[string]interface{}{}
		)
		listener := NewEventListener(socket, func(property string, data interface{}) {
			mu.Lock()
			defer mu.Unlock()
			seen[property] = data
		})

		So(listener.Start(), ShouldBeNil)

		Convey("Property changes should reach the callback", func() {
			deadline := time.Now().Add(2 * time.Second)
			for time.Now().Before(deadline) {
				mu.Lock()
				n := len(seen)
				mu.Unlock()
				if n >= len(observedProperties)+1 {
					break
				}
				time.Sleep(10 * time.Millisecond)
			}

			listener.Stop()

			mu.Lock()
			defer mu.Unlock()
			So(seen["time-pos"], ShouldEqual, 31.0)
			So(seen["duration"], ShouldEqual, 31.0)
			So(seen["eof-reached"], ShouldEqual, true)
			So(seen, ShouldContainKey, "playback-restart")
		})
	})
}
