// Package cache keeps short-lived API responses on disk, e.g. search results used for shell completion.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/kinoteka-cli/kinoteka/filesystem"
	"github.com/kinoteka-cli/kinoteka/log"
	"github.com/kinoteka-cli/kinoteka/where"
	"github.com/spf13/afero"
)

// TTL bounds how long a cached response is served.
const TTL = 24 * time.Hour

// Key derives a stable file name from a request's parts, ignoring case and spaces.
func Key(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, part := range parts {
		normalized[i] = strings.ToLower(strings.ReplaceAll(part, " ", ""))
	}

	hash := sha256.Sum256([]byte(strings.Join(normalized, "\x00")))
	return hex.EncodeToString(hash[:])
}

// Read decodes a cached entry into target. It reports false for missing, stale or unreadable entries.
func Read(key string, target any) bool {
	path := filepath.Join(where.Responses(), key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	if err := filesystem.ReadJSON(path, target); err != nil {
		log.Warnf("cache: drop unreadable entry %s: %s", key, err)
		return false
	}

	return true
}

// Write stores data under key.
func Write(key string, data any) error {
	return filesystem.WriteJSON(filepath.Join(where.Responses(), key), data)
}

// CollectGarbage removes stale entries and returns how many were removed.
func CollectGarbage() int {
	var removed int

	_ = afero.Walk(filesystem.API(), where.Responses(), func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}

		if time.Since(info.ModTime()) > TTL {
			if filesystem.API().Remove(path) == nil {
				removed++
			}
		}
		return nil
	})

	return removed
}
