// Package session drives a content card: it loads metadata, decides eligibility,
// and plays movies, episodes and trailers while reporting progress.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kinoteka-cli/kinoteka/api"
	"github.com/kinoteka-cli/kinoteka/log"
	"github.com/kinoteka-cli/kinoteka/media"
	"github.com/kinoteka-cli/kinoteka/player"
	"github.com/kinoteka-cli/kinoteka/progress"
	"github.com/samber/mo"
)

// API is the part of the service the session depends on.
type API interface {
	progress.Sender

	Content(ctx context.Context, id string) (api.ContentRef, error)
	CanWatch(ctx context.Context, id string) (bool, error)
	Source(ctx context.Context, id string) (api.SourceResult, error)
	EpisodeSource(ctx context.Context, id string, season, episode int) (api.SourceResult, error)
	SeriesTree(ctx context.Context, id string) (api.SeasonTree, error)
	Progress(ctx context.Context, id string, season, episode int) (api.SavedProgress, error)
	Purchase(ctx context.Context, id string) error
}

// Options configures a Session.
type Options struct {
	// Backend mounts elements, player.NewSystem() in production.
	Backend player.Backend

	Alerter Alerter

	// Origin is passed to embedded providers and sent as Referer by native players.
	Origin string

	// Authenticated shows the rating and favorite controls.
	Authenticated bool

	// Reporter options applied to every progress reporter.
	Reporter []progress.Option
}

// Session is one opened content card.
type Session struct {
	client  API
	input   string
	options Options

	player  *player.Container
	trailer *player.Container

	mu       sync.Mutex
	stage    Stage
	id       string
	content  mo.Option[api.ContentRef]
	eligible bool
	tree     api.SeasonTree
	selected mo.Option[int]
	reporter *progress.Reporter
	watchers sync.WaitGroup
	closed   bool
}

// New prepares a session for input, a content id or a content page URL.
func New(client API, input string, options Options) *Session {
	if options.Backend == nil {
		options.Backend = player.NewSystem()
	}
	if options.Alerter == nil {
		options.Alerter = AlerterFunc(func(message string) { log.Warn(message) })
	}

	return &Session{
		client:  client,
		input:   input,
		options: options,
		player:  player.NewContainer("player", options.Backend),
		trailer: player.NewContainer("trailer", options.Backend),
		stage:   Init,
		content: mo.None[api.ContentRef](),
	}
}

// Run resolves the id, loads metadata and eligibility, and enters the movie or series branch.
// A metadata failure leaves the session Degraded with inert controls and returns the error.
func (s *Session) Run(ctx context.Context) error {
	s.setStage(Init)

	id, err := ResolveID(s.input)
	if err != nil {
		s.setStage(Aborted)
		return fmt.Errorf("%w in %q", ErrNoContent, s.input)
	}

	s.mu.Lock()
	s.id = id
	s.mu.Unlock()

	return s.load(ctx)
}

func (s *Session) load(ctx context.Context) error {
	id := s.ID()
	entry := log.WithField("content", id)

	s.setStage(MetadataFetch)
	content, err := s.client.Content(ctx, id)
	if err != nil {
		entry.Errorf("load metadata: %s", err)
		s.mu.Lock()
		s.stage = Degraded
		s.content = mo.None[api.ContentRef]()
		s.eligible = false
		s.mu.Unlock()
		return err
	}

	s.setStage(EligibilityCheck)
	eligible := s.checkEligibility(ctx, content)

	s.mu.Lock()
	s.content = mo.Some(content)
	s.eligible = eligible
	s.mu.Unlock()

	if content.Type == api.Series {
		s.enterSeries(ctx, id, eligible)
		return nil
	}

	s.setStage(MovieBranch)
	entry.Infof("movie loaded, eligible=%t", eligible)
	return nil
}

// checkEligibility fails closed: any error means the content cannot be watched.
func (s *Session) checkEligibility(ctx context.Context, content api.ContentRef) bool {
	if content.IsFree {
		return true
	}

	ok, err := s.client.CanWatch(ctx, content.ID)
	if err != nil {
		log.WithField("content", content.ID).Warnf("eligibility check failed, treating as not eligible: %s", err)
		return false
	}
	return ok
}

func (s *Session) enterSeries(ctx context.Context, id string, eligible bool) {
	var tree api.SeasonTree

	if eligible {
		var err error
		tree, err = s.client.SeriesTree(ctx, id)
		if err != nil {
			log.WithField("content", id).Warnf("load series tree: %s", err)
			tree = api.SeasonTree{}
		}
	}

	s.mu.Lock()
	s.tree = tree
	s.selected = mo.None[int]()
	s.stage = SeriesBranch
	s.mu.Unlock()

	log.WithField("content", id).Infof("series loaded, eligible=%t, seasons=%d", eligible, len(tree))
}

// Buy purchases the content, then reloads metadata and eligibility.
func (s *Session) Buy(ctx context.Context) error {
	if !s.Stage().Ready() {
		return ErrNoContent
	}

	if err := s.client.Purchase(ctx, s.ID()); err != nil {
		s.options.Alerter.Alert(MsgPurchaseFailed)
		return err
	}

	return s.load(ctx)
}

// SelectSeason opens the episode list of a season.
func (s *Session) SelectSeason(number int) (api.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stage != SeriesBranch || !s.eligible {
		return api.Season{}, api.ErrNotEligible
	}

	season, ok := s.tree.Season(number)
	if !ok {
		return api.Season{}, fmt.Errorf("season %d: %w", number, api.ErrUnavailable)
	}

	s.selected = mo.Some(number)
	return season, nil
}

// BackToSeasons closes the episode list.
func (s *Session) BackToSeasons() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = mo.None[int]()
}

// PlayEpisode plays an episode of an eligible series.
func (s *Session) PlayEpisode(ctx context.Context, season, episode int) error {
	content, err := s.playable(api.Series)
	if err != nil {
		return err
	}

	result, err := s.client.EpisodeSource(ctx, content.ID, season, episode)
	title := fmt.Sprintf("%s S%02dE%02d", content.Title, season, episode)
	return s.playSource(ctx, result, err, progress.Target{ContentID: content.ID, Season: season, Episode: episode}, title)
}

// PlayMovie plays an eligible movie.
func (s *Session) PlayMovie(ctx context.Context) error {
	content, err := s.playable(api.Movie)
	if err != nil {
		return err
	}

	result, err := s.client.Source(ctx, content.ID)
	return s.playSource(ctx, result, err, progress.Target{ContentID: content.ID}, content.Title)
}

// playable checks the content type and eligibility before a source is requested.
func (s *Session) playable(kind api.ContentType) (api.ContentRef, error) {
	s.mu.Lock()
	content, loaded := s.content.Get()
	eligible := s.eligible
	s.mu.Unlock()

	if !loaded {
		return api.ContentRef{}, ErrNoContent
	}

	if content.Type != kind {
		return api.ContentRef{}, fmt.Errorf("%s is a %s", content.ID, content.Type)
	}

	if !eligible {
		s.options.Alerter.Alert(MsgPurchaseRequired)
		return api.ContentRef{}, api.ErrNotEligible
	}

	return content, nil
}

func (s *Session) playSource(ctx context.Context, result api.SourceResult, err error, target progress.Target, title string) error {
	ok, isOK := result.(api.SourceOK)
	if err != nil || !isOK {
		s.options.Alerter.Alert(MsgSourceUnavailable)
		if err != nil {
			return err
		}
		if unavailable, is := result.(api.SourceUnavailable); is {
			return fmt.Errorf("%w: %s", api.ErrUnavailable, unavailable.Reason)
		}
		return api.ErrUnavailable
	}

	reporter := progress.New(s.client, target, append([]progress.Option{progress.WithTitle(title)}, s.options.Reporter...)...)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errors.New("session is closed")
	}
	if s.reporter != nil {
		s.reporter.Close()
	}
	s.reporter = reporter
	s.mu.Unlock()

	reporter.Start()

	mounted, err := player.Mount(ok.Kind, ok.URL, mo.Some(s.player), s.mountOptions(title))
	if err != nil {
		reporter.Close()
		s.options.Alerter.Alert(MsgPlayerFailed)
		return err
	}

	element, present := mounted.Get()
	if !present {
		reporter.Close()
		return nil
	}

	if observable, is := element.(player.Observable); is {
		observable.OnEvent(reporter.Observe)
		s.watch(func() {
			<-element.Done()
			reporter.Close()
		})
	} else {
		// browser pages never report positions back
		reporter.Close()
	}

	if seeker, is := element.(player.Seeker); is {
		s.watch(func() { s.resume(ctx, seeker, target) })
	}

	log.WithFields(map[string]any{
		"content": target.ContentID,
		"season":  target.Season,
		"episode": target.Episode,
		"kind":    ok.Kind.String(),
	}).Info("playback started")

	return nil
}

// resume seeks to the position the service saved last time.
func (s *Session) resume(ctx context.Context, seeker player.Seeker, target progress.Target) {
	saved, err := s.client.Progress(ctx, target.ContentID, target.Season, target.Episode)
	if err != nil {
		log.WithField("content", target.ContentID).Debugf("no saved progress: %s", err)
		return
	}

	if saved.Completed {
		return
	}

	duration := 0
	if saved.Duration != nil {
		duration = *saved.Duration
	}

	if _, err := player.Resume(seeker, saved.Position, duration); err != nil {
		log.WithField("content", target.ContentID).Warnf("resume: %s", err)
	}
}

// PlayTrailer plays the trailer. It does not depend on eligibility.
func (s *Session) PlayTrailer(context.Context) error {
	s.mu.Lock()
	content, loaded := s.content.Get()
	s.mu.Unlock()

	if !loaded {
		return ErrNoContent
	}

	if !content.HasTrailer() {
		s.options.Alerter.Alert(MsgTrailerUnavailable)
		return fmt.Errorf("trailer: %w", api.ErrUnavailable)
	}

	kind := media.Classify(content.TrailerURL)
	if _, err := player.Mount(kind, content.TrailerURL, mo.Some(s.trailer), s.mountOptions(content.Title+" (trailer)")); err != nil {
		s.options.Alerter.Alert(MsgTrailerUnavailable)
		return err
	}

	return nil
}

func (s *Session) mountOptions(title string) player.MountOptions {
	options := player.MountOptions{Title: title, Origin: s.options.Origin}
	if s.options.Origin != "" {
		options.Headers = map[string]string{"Referer": s.options.Origin + "/"}
	}
	return options
}

func (s *Session) watch(f func()) {
	s.watchers.Add(1)
	go func() {
		defer s.watchers.Done()
		f()
	}()
}

// Close tears down every mounted element and stops progress reporting.
// Reports already sent are left to finish, see Wait.
func (s *Session) Close() error {
	s.mu.Lock()
	s.closed = true
	reporter := s.reporter
	s.mu.Unlock()

	if reporter != nil {
		reporter.Close()
	}

	return errors.Join(s.player.Clear(), s.trailer.Clear())
}

// Wait blocks until background work and in-flight progress reports have finished.
func (s *Session) Wait() {
	s.watchers.Wait()

	s.mu.Lock()
	reporter := s.reporter
	s.mu.Unlock()

	if reporter != nil {
		reporter.Wait()
	}
}

// Player returns the container movies and episodes are mounted into.
func (s *Session) Player() *player.Container {
	return s.player
}

// Trailer returns the container trailers are mounted into.
func (s *Session) Trailer() *player.Container {
	return s.trailer
}

// Reporter returns the reporter of the current playback, if any.
func (s *Session) Reporter() mo.Option[*progress.Reporter] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reporter == nil {
		return mo.None[*progress.Reporter]()
	}
	return mo.Some(s.reporter)
}

func (s *Session) setStage(stage Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stage = stage
}

// Stage returns the current stage.
func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// ID returns the resolved content id, empty before Run.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Content returns the loaded metadata.
func (s *Session) Content() mo.Option[api.ContentRef] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

// Eligible reports whether the content can be watched.
func (s *Session) Eligible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eligible
}

// Seasons returns the series tree, empty for movies.
func (s *Session) Seasons() api.SeasonTree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

// SelectedSeason returns the season whose episodes are listed.
func (s *Session) SelectedSeason() mo.Option[api.Season] {
	s.mu.Lock()
	defer s.mu.Unlock()

	number, ok := s.selected.Get()
	if !ok {
		return mo.None[api.Season]()
	}

	season, ok := s.tree.Season(number)
	if !ok {
		return mo.None[api.Season]()
	}
	return mo.Some(season)
}

// Controls reports which controls the card shows.
func (s *Session) Controls() Controls {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, loaded := s.content.Get()
	if !loaded || !s.stage.Ready() {
		return Controls{}
	}

	controls := Controls{
		Trailer:  true,
		Rating:   s.options.Authenticated,
		Favorite: s.options.Authenticated,
		Buy:      !s.eligible && !content.IsFree,
	}

	switch content.Type {
	case api.Series:
		controls.SeriesPanel = s.eligible
	case api.Movie:
		controls.Watch = s.eligible
	}

	return controls
}
