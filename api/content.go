package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/kinoteka-cli/kinoteka/progress"
)

func contentPath(id, action string) string {
	if action == "" {
		return "content/" + url.PathEscape(id) + "/"
	}
	return "content/" + url.PathEscape(id) + "/" + action + "/"
}

func episodeQuery(season, episode int) url.Values {
	return url.Values{
		"sn": {strconv.Itoa(season)},
		"en": {strconv.Itoa(episode)},
	}
}

// Content fetches the metadata of a movie or a series.
func (c *Client) Content(ctx context.Context, id string) (ContentRef, error) {
	var raw rawContent
	if err := c.get(ctx, contentPath(id, ""), nil, &raw); err != nil {
		return ContentRef{}, fmt.Errorf("content %s: %w", id, err)
	}

	return raw.toContentRef()
}

// CanWatch asks whether the current account may play the content.
func (c *Client) CanWatch(ctx context.Context, id string) (bool, error) {
	var payload struct {
		CanWatch bool `json:"can_watch"`
	}

	if err := c.get(ctx, contentPath(id, "can_watch"), nil, &payload); err != nil {
		return false, fmt.Errorf("can watch %s: %w", id, err)
	}

	return payload.CanWatch, nil
}

// Source looks up the playable source of a movie.
// Forbidden and missing sources come back as SourceUnavailable with a nil error.
func (c *Client) Source(ctx context.Context, id string) (SourceResult, error) {
	var raw rawSource
	if err := c.get(ctx, contentPath(id, "source"), nil, &raw); err != nil {
		return sourceFromError(err)
	}

	return raw.toResult(), nil
}

// EpisodeSource looks up the playable source of an episode.
func (c *Client) EpisodeSource(ctx context.Context, id string, season, episode int) (SourceResult, error) {
	var raw rawSource
	if err := c.get(ctx, contentPath(id, "episode-source"), episodeQuery(season, episode), &raw); err != nil {
		return sourceFromError(err)
	}

	return raw.toResult(), nil
}

// SeriesTree fetches and normalizes the seasons of a series.
func (c *Client) SeriesTree(ctx context.Context, id string) (SeasonTree, error) {
	var payload struct {
		OK      bool        `json:"ok"`
		Seasons []rawSeason `json:"seasons"`
	}

	if err := c.get(ctx, contentPath(id, "series-tree"), nil, &payload); err != nil {
		return nil, fmt.Errorf("series tree %s: %w", id, err)
	}

	if !payload.OK {
		return nil, fmt.Errorf("series tree %s: %w", id, ErrUnavailable)
	}

	return normalizeSeasons(payload.Seasons), nil
}

// ReportProgress posts a watch position. It satisfies progress.Sender.
func (c *Client) ReportProgress(ctx context.Context, id string, report progress.Report) error {
	if err := c.post(ctx, contentPath(id, "progress"), report, nil); err != nil {
		return fmt.Errorf("report progress %s: %w", id, err)
	}
	return nil
}

// Progress fetches the saved watch position of a movie (0/0) or an episode.
func (c *Client) Progress(ctx context.Context, id string, season, episode int) (SavedProgress, error) {
	var saved SavedProgress
	if err := c.get(ctx, contentPath(id, "progress"), episodeQuery(season, episode), &saved); err != nil {
		return SavedProgress{}, fmt.Errorf("progress %s: %w", id, err)
	}
	return saved, nil
}

// Rate submits a 1..5 rating and returns the new average.
func (c *Client) Rate(ctx context.Context, id string, value int) (float64, error) {
	if value < 1 || value > 5 {
		return 0, fmt.Errorf("rating must be between 1 and 5, got %d", value)
	}

	var payload struct {
		OK  bool    `json:"ok"`
		Avg *number `json:"avg"`
	}

	if err := c.post(ctx, contentPath(id, "rate"), map[string]int{"value": value}, &payload); err != nil {
		return 0, fmt.Errorf("rate %s: %w", id, err)
	}

	if !payload.OK || payload.Avg == nil {
		return 0, malformed("rate %s: response without average", id)
	}

	return float64(*payload.Avg), nil
}

// Purchase buys the content for the current account.
func (c *Client) Purchase(ctx context.Context, id string) error {
	if err := c.post(ctx, "purchases/", map[string]string{"content_id": id}, nil); err != nil {
		return fmt.Errorf("purchase %s: %w", id, err)
	}
	return nil
}

// FavoriteStatus reports whether the content is in the account's favorites.
func (c *Client) FavoriteStatus(ctx context.Context, id string) (bool, error) {
	var payload struct {
		OK         bool `json:"ok"`
		IsFavorite bool `json:"is_favorite"`
	}

	if err := c.get(ctx, "favorites/"+url.PathEscape(id)+"/status/", nil, &payload); err != nil {
		return false, fmt.Errorf("favorite status %s: %w", id, err)
	}

	return payload.IsFavorite, nil
}

// ToggleFavorite flips the favorite state and returns the new one.
func (c *Client) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	var payload struct {
		OK         bool   `json:"ok"`
		IsFavorite *bool  `json:"is_favorite"`
		Error      string `json:"error"`
	}

	if err := c.post(ctx, "favorites/"+url.PathEscape(id)+"/toggle/", nil, &payload); err != nil {
		return false, fmt.Errorf("toggle favorite %s: %w", id, err)
	}

	if !payload.OK || payload.IsFavorite == nil {
		return false, malformed("toggle favorite %s: %s", id, firstNonEmpty(payload.Error, "response without state"))
	}

	return *payload.IsFavorite, nil
}
