package session

import (
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// ErrNoContent is returned when no content id can be resolved from the input.
var ErrNoContent = errors.New("no content id")

// minIDLength is the shortest path segment accepted as an id.
const minIDLength = 32

// ResolveID extracts a content id from a bare id or a content page URL.
// Bare ids must be UUIDs, with or without dashes. In URLs the last path
// segment is taken when it is at least 32 characters long.
// UUIDs are returned in their canonical dashed form.
func ResolveID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrNoContent
	}

	if id, err := uuid.Parse(input); err == nil {
		return id.String(), nil
	}

	if !strings.Contains(input, "/") {
		return "", ErrNoContent
	}

	path := input
	if u, err := url.Parse(input); err == nil {
		path = u.Path
	}

	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return "", ErrNoContent
	}

	last := segments[len(segments)-1]
	if len(last) < minIDLength {
		return "", ErrNoContent
	}

	if id, err := uuid.Parse(last); err == nil {
		return id.String(), nil
	}

	return last, nil
}
