// Package history mirrors reported watch positions on disk so they can be listed offline.
package history

import (
	"sync"
	"time"

	"github.com/kinoteka-cli/kinoteka/filesystem"
	"github.com/kinoteka-cli/kinoteka/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// mu serializes read-modify-write cycles of concurrent reporters.
var mu sync.Mutex

var cacher = gache.New[map[string]*Record](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every stored record keyed by content/season/episode.
func Get() (map[string]*Record, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Record), nil
	}
	return cached, nil
}

// List returns the records, most recently updated first.
func List() ([]*Record, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	records := lo.Values(saved)
	slices.SortFunc(records, func(a, b *Record) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})

	return records, nil
}

// Save stores the latest position for a record.
// The watched percentage never decreases, so re-watching from the start keeps earlier progress.
func Save(record Record) error {
	mu.Lock()
	defer mu.Unlock()

	saved, err := Get()
	if err != nil {
		return err
	}

	record.Percentage = percentage(record.Position, record.Duration)
	if record.Completed {
		record.Percentage = 100
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now()
	}

	if existing, ok := saved[record.encode()]; ok {
		record.Percentage = max(record.Percentage, existing.Percentage)
		record.Completed = record.Completed || existing.Completed
		if record.Title == "" {
			record.Title = existing.Title
		}
	}

	saved[record.encode()] = &record
	return cacher.Set(saved)
}

// Remove deletes a single record.
func Remove(record *Record) error {
	mu.Lock()
	defer mu.Unlock()

	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, record.encode())
	return cacher.Set(saved)
}

// Clear drops every record.
func Clear() error {
	mu.Lock()
	defer mu.Unlock()

	return cacher.Set(make(map[string]*Record))
}
