// Package progress reports watch positions to the service while a player is running.
//
// Reports are driven by player events rather than a timer: a position is sent
// once it is at least one interval past the last reported one. Every report is
// fire-and-forget. Requests leave in the order the reports were made, one at a
// time. Failures are surfaced on Results and never retried.
package progress

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/kinoteka-cli/kinoteka/history"
	"github.com/kinoteka-cli/kinoteka/key"
	"github.com/kinoteka-cli/kinoteka/log"
	"github.com/spf13/viper"
)

// DefaultInterval is the minimum number of seconds between two position reports.
const DefaultInterval = 30

const resultsBuffer = 16

// Target identifies what is being watched. Movies use season and episode 0.
type Target struct {
	ContentID string
	Season    int
	Episode   int
}

// Report is a single progress update as the service expects it.
type Report struct {
	Position  int  `json:"position"`
	Duration  *int `json:"duration"`
	Season    int  `json:"sn"`
	Episode   int  `json:"en"`
	Completed bool `json:"completed"`
}

// Result is the outcome of one report.
type Result struct {
	Report Report
	Err    error
}

// Sender delivers reports, usually the API client.
type Sender interface {
	ReportProgress(ctx context.Context, contentID string, report Report) error
}

// Reporter throttles and sends progress reports for a single target.
type Reporter struct {
	sender  Sender
	target  Target
	ctx     context.Context
	timeout time.Duration

	interval int
	title    string
	mirror   bool

	mu           sync.Mutex
	lastReported int
	duration     float64
	completed    bool
	closed       bool
	queue        []Report
	draining     bool

	wg      sync.WaitGroup
	results chan Result
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithInterval overrides the configured throttle interval in seconds.
func WithInterval(seconds int) Option {
	return func(r *Reporter) {
		if seconds > 0 {
			r.interval = seconds
		}
	}
}

// WithContext sets the parent context of every report request.
func WithContext(ctx context.Context) Option {
	return func(r *Reporter) {
		r.ctx = ctx
	}
}

// WithTimeout bounds every report request.
func WithTimeout(d time.Duration) Option {
	return func(r *Reporter) {
		r.timeout = d
	}
}

// WithHistory toggles the local history mirror.
func WithHistory(enabled bool) Option {
	return func(r *Reporter) {
		r.mirror = enabled
	}
}

// WithTitle names the target in the local history.
func WithTitle(title string) Option {
	return func(r *Reporter) {
		r.title = title
	}
}

// New returns a Reporter for target.
func New(sender Sender, target Target, opts ...Option) *Reporter {
	r := &Reporter{
		sender:   sender,
		target:   target,
		ctx:      context.Background(),
		timeout:  30 * time.Second,
		interval: viper.GetInt(key.ProgressInterval),
		mirror:   viper.GetBool(key.HistorySaveOnWatch),
		duration: math.NaN(),
		results:  make(chan Result, resultsBuffer),
	}

	if r.interval <= 0 {
		r.interval = DefaultInterval
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Target returns what the reporter reports for.
func (r *Reporter) Target() Target {
	return r.target
}

// Results streams the outcome of every report. Outcomes are dropped when nobody drains it.
func (r *Reporter) Results() <-chan Result {
	return r.results
}

// LastReported returns the last position that was sent.
func (r *Reporter) LastReported() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastReported
}

// Start sends the initial zero-position report that precedes opening a player.
func (r *Reporter) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.enqueue(r.report(0, nil, false))
}

// Tick handles a playback position update in seconds.
func (r *Reporter) Tick(seconds float64) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return
	}

	pos := int(math.Floor(seconds))

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.completed || pos-r.lastReported < r.interval {
		return
	}
	r.lastReported = pos
	r.enqueue(r.report(pos, r.knownDuration(), false))
}

// SetDuration records the media duration once the player knows it.
func (r *Reporter) SetDuration(seconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.duration = seconds
}

// Complete sends the final report. Position and duration are both the floored
// duration, or 0 when it is unknown. Only the first call has an effect.
func (r *Reporter) Complete(duration float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.completed {
		return
	}
	r.completed = true

	final := 0
	if !math.IsNaN(duration) && !math.IsInf(duration, 0) && duration > 0 {
		final = int(math.Floor(duration))
	}

	r.enqueue(r.report(final, &final, true))
}

// Observe adapts player property events to the reporter.
// Its signature matches player.EventCallback.
func (r *Reporter) Observe(property string, data interface{}) {
	switch property {
	case "time-pos":
		if seconds, ok := data.(float64); ok {
			r.Tick(seconds)
		}
	case "duration":
		if seconds, ok := data.(float64); ok {
			r.SetDuration(seconds)
		}
	case "eof-reached":
		if reached, ok := data.(bool); ok && reached {
			r.mu.Lock()
			duration := r.duration
			r.mu.Unlock()
			r.Complete(duration)
		}
	}
}

// Close stops accepting ticks. Reports already in flight still finish.
func (r *Reporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

// Wait blocks until every in-flight report has finished.
func (r *Reporter) Wait() {
	r.wg.Wait()
}

func (r *Reporter) knownDuration() *int {
	if math.IsNaN(r.duration) || math.IsInf(r.duration, 0) || r.duration <= 0 {
		return nil
	}
	d := int(math.Floor(r.duration))
	return &d
}

func (r *Reporter) report(position int, duration *int, completed bool) Report {
	return Report{
		Position:  position,
		Duration:  duration,
		Season:    r.target.Season,
		Episode:   r.target.Episode,
		Completed: completed,
	}
}

// enqueue queues a report and starts the drain goroutine when none is running.
// r.mu must be held.
func (r *Reporter) enqueue(report Report) {
	r.wg.Add(1)
	r.queue = append(r.queue, report)

	if !r.draining {
		r.draining = true
		go r.drain()
	}
}

// drain sends queued reports in order and exits once the queue is empty.
func (r *Reporter) drain() {
	for {
		r.mu.Lock()
		if len(r.queue) == 0 {
			r.draining = false
			r.mu.Unlock()
			return
		}
		report := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()

		r.send(report)
		r.wg.Done()
	}
}

func (r *Reporter) send(report Report) {
	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()

	err := r.sender.ReportProgress(ctx, r.target.ContentID, report)

	entry := log.WithFields(map[string]any{
		"content":  r.target.ContentID,
		"season":   r.target.Season,
		"episode":  r.target.Episode,
		"position": report.Position,
	})
	if err != nil {
		entry.Warnf("progress report failed: %s", err)
	} else {
		entry.Debug("progress reported")
		r.mirrorToHistory(report)
	}

	select {
	case r.results <- Result{Report: report, Err: err}:
	default:
	}
}

func (r *Reporter) mirrorToHistory(report Report) {
	if !r.mirror {
		return
	}

	record := history.Record{
		ContentID: r.target.ContentID,
		Title:     r.title,
		Season:    r.target.Season,
		Episode:   r.target.Episode,
		Position:  report.Position,
		Completed: report.Completed,
	}
	if report.Duration != nil {
		record.Duration = *report.Duration
	}

	if err := history.Save(record); err != nil {
		log.Warnf("history: save %s: %s", r.target.ContentID, err)
	}
}
