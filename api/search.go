package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/kinoteka-cli/kinoteka/internal/cache"
	"github.com/kinoteka-cli/kinoteka/log"
	"github.com/samber/lo"
)

// Search finds content by title, description or id. The best match comes first.
// An empty kind searches every type.
func (c *Client) Search(ctx context.Context, query string, kind ContentType) ([]ContentRef, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	cacheKey := cache.Key(c.base.String(), query, string(kind))

	var cached []ContentRef
	if cache.Read(cacheKey, &cached) {
		return cached, nil
	}

	params := url.Values{"q": {query}}
	if kind != "" {
		params.Set("type", string(kind))
	}

	var payload struct {
		OK         bool         `json:"ok"`
		ExactMatch *rawContent  `json:"exact_match"`
		Results    []rawContent `json:"results"`
	}

	if err := c.get(ctx, "search/", params, &payload); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	raw := payload.Results
	if payload.ExactMatch != nil {
		raw = append([]rawContent{*payload.ExactMatch}, raw...)
	}

	results := lo.FilterMap(raw, func(r rawContent, _ int) (ContentRef, bool) {
		ref, err := r.toContentRef()
		if err != nil {
			log.Warnf("search: skip result: %s", err)
			return ContentRef{}, false
		}
		return ref, true
	})

	if err := cache.Write(cacheKey, results); err != nil {
		log.Warnf("search: cache results: %s", err)
	}

	return results, nil
}
