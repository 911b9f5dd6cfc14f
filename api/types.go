package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// ContentType distinguishes movies from series.
type ContentType string

const (
	Movie  ContentType = "movie"
	Series ContentType = "series"
)

// ContentRef is the content metadata the card is built from.
type ContentRef struct {
	ID          string      `json:"id" jsonschema:"description=Content id"`
	Title       string      `json:"title"`
	Type        ContentType `json:"type" jsonschema:"enum=movie,enum=series"`
	Description string      `json:"description,omitempty"`
	ReleaseYear int         `json:"release_year,omitempty"`
	IsFree      bool        `json:"is_free"`
	TrailerURL  string      `json:"trailer_url,omitempty"`
	PosterURL   string      `json:"poster_url,omitempty"`
	BackdropURL string      `json:"backdrop_url,omitempty"`
	AvgRating   float64     `json:"avg_rating"`
}

// HasTrailer reports whether a trailer URL is present.
func (c ContentRef) HasTrailer() bool {
	return strings.TrimSpace(c.TrailerURL) != ""
}

// rawContent is the wire shape of a content document.
// The service is inconsistent about a few fields, see toContentRef.
type rawContent struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	ReleaseYear *number `json:"release_year"`
	IsFree      bool    `json:"is_free"`
	TrailerURL  string  `json:"trailer_url"`
	PosterURL   string  `json:"poster_url"`
	BackdropURL string  `json:"backdrop_url"`
	LogoWideURL string  `json:"logo_wide_url"`
	AvgRating   *number `json:"avg_rating"`
	Rating      *number `json:"rating"`
}

func (r rawContent) toContentRef() (ContentRef, error) {
	if strings.TrimSpace(r.ID) == "" {
		return ContentRef{}, malformed("content without id")
	}

	kind := ContentType(strings.ToLower(strings.TrimSpace(r.Type)))
	if kind != Movie && kind != Series {
		return ContentRef{}, malformed("content %s has unknown type %q", r.ID, r.Type)
	}

	ref := ContentRef{
		ID:          r.ID,
		Title:       r.Title,
		Type:        kind,
		Description: r.Description,
		IsFree:      r.IsFree,
		TrailerURL:  strings.TrimSpace(r.TrailerURL),
		PosterURL:   r.PosterURL,
		BackdropURL: lo.Ternary(r.BackdropURL != "", r.BackdropURL, r.LogoWideURL),
	}

	if r.ReleaseYear != nil {
		ref.ReleaseYear = int(*r.ReleaseYear)
	}

	if rating, ok := lo.Coalesce(r.AvgRating, r.Rating); ok {
		ref.AvgRating = float64(*rating)
	}

	return ref, nil
}

// SavedProgress is the server-side watch position used for resuming.
type SavedProgress struct {
	Position  int  `json:"position_sec"`
	Duration  *int `json:"duration_sec"`
	Completed bool `json:"is_completed"`
}

// number accepts a JSON number or a numeric string.
type number float64

func (n *number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			return err
		}
		*n = number(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = number(f)
	return nil
}
