// Package rating implements the star rating control of a content card.
package rating

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/kinoteka-cli/kinoteka/log"
	"github.com/kinoteka-cli/kinoteka/session"
	"github.com/kinoteka-cli/kinoteka/util"
)

// Steps is the number of half-star positions.
const Steps = 10

const MsgFailed = "Failed to update rating"

// Rater submits a rating and returns the new average.
type Rater interface {
	Rate(ctx context.Context, id string, value int) (float64, error)
}

// Widget holds the fill shown to the user and the last known average.
type Widget struct {
	id      string
	client  Rater
	alerter session.Alerter
	guard   *util.Guard

	mu      sync.Mutex
	average float64
	fill    int
}

// New creates a widget for content id showing average.
// A nil guard gives the widget its own.
func New(id string, client Rater, average float64, alerter session.Alerter, guard *util.Guard) *Widget {
	if guard == nil {
		guard = &util.Guard{}
	}
	if alerter == nil {
		alerter = session.AlerterFunc(func(string) {})
	}

	w := &Widget{
		id:      id,
		client:  client,
		alerter: alerter,
		guard:   guard,
		average: round1(average),
	}
	w.fill = fillOf(w.average)
	return w
}

// Value converts a half-star position to the 1..5 value sent to the service.
func Value(half int) int {
	return (half + 1) / 2
}

func clamp(percent int) int {
	return min(max(percent, 0), 100)
}

func fillOf(average float64) int {
	return clamp(int(math.Round(average * 2 * 10)))
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// Hover previews half stars.
func (w *Widget) Hover(half int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fill = clamp(half * 10)
}

// Leave resets the fill to the average.
func (w *Widget) Leave() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fill = fillOf(w.average)
}

// Click submits the rating for half stars.
func (w *Widget) Click(ctx context.Context, half int) error {
	if half < 1 || half > Steps {
		return fmt.Errorf("half step %d out of range 1..%d", half, Steps)
	}

	if !w.guard.TryAcquire() {
		return util.ErrBusy
	}
	defer w.guard.Release()

	w.Hover(half)

	value := Value(half)
	average, err := w.client.Rate(ctx, w.id, value)
	if err != nil {
		log.WithField("content", w.id).Errorf("rate %d: %s", value, err)
		w.Leave()
		w.alerter.Alert(MsgFailed)
		return err
	}

	w.mu.Lock()
	w.average = round1(average)
	w.fill = fillOf(w.average)
	w.mu.Unlock()

	log.WithField("content", w.id).Infof("rated %d, average %.1f", value, average)
	return nil
}

// Average returns the last known average.
func (w *Widget) Average() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.average
}

// Fill returns the shown fill in percent.
func (w *Widget) Fill() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fill
}

// Busy reports whether a request holds the guard.
func (w *Widget) Busy() bool {
	return w.guard.Busy()
}

// Label is the average with one decimal.
func (w *Widget) Label() string {
	return fmt.Sprintf("%.1f", w.Average())
}
