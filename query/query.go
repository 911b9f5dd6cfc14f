// Package query remembers search queries and suggests them back while typing.
package query

import (
	"strings"
	"sync"

	"github.com/kinoteka-cli/kinoteka/filesystem"
	"github.com/kinoteka-cli/kinoteka/key"
	"github.com/kinoteka-cli/kinoteka/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type record struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

var cacher = gache.New[map[string]*record](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var (
	mu          sync.Mutex
	suggestions = make(map[string][]string)
)

// Remember records q, adding weight to its rank if it was searched before.
// Queries that found an exact match are remembered with a higher weight.
func Remember(q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*record)
	}

	if r, ok := cached[q]; ok {
		r.Rank += weight
	} else {
		cached[q] = &record{Rank: weight, Query: q}
	}

	suggestions = make(map[string][]string)
	return cacher.Set(cached)
}

// Suggest returns the best remembered query for a partial input.
func Suggest(q string) mo.Option[string] {
	found := SuggestMany(q)
	if len(found) == 0 {
		return mo.None[string]()
	}
	return mo.Some(found[0])
}

// SuggestMany returns remembered queries fuzzily matching q, highest rank first.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	mu.Lock()
	defer mu.Unlock()

	if prev, ok := suggestions[q]; ok {
		return prev
	}

	cached, expired, err := cacher.Get()
	if err != nil || expired || cached == nil {
		return []string{}
	}

	records := lo.Filter(lo.Values(cached), func(r *record, _ int) bool {
		return r.Query != q && fuzzy.Match(q, r.Query)
	})

	slices.SortFunc(records, func(a, b *record) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.Query, b.Query)
	})

	found := lo.Map(records, func(r *record, _ int) string {
		return r.Query
	})
	suggestions[q] = found
	return found
}

func sanitize(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}
