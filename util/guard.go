package util

import (
	"errors"
	"sync/atomic"
)

// ErrBusy is returned when a guarded request is already in flight.
var ErrBusy = errors.New("request already in flight")

// Guard is a single in-flight flag for a widget that must not overlap its own requests.
// The zero value is ready to use.
type Guard struct {
	busy atomic.Bool
}

// TryAcquire marks the guard busy. It returns false if it already was.
func (g *Guard) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

// Release clears the busy flag.
func (g *Guard) Release() {
	g.busy.Store(false)
}

// Busy reports whether a request is in flight.
func (g *Guard) Busy() bool {
	return g.busy.Load()
}
