// Package media classifies video URLs by provider and rewrites them into embeddable form.
package media

import (
	"strings"
)

// Kind identifies how a source is played.
type Kind string

const (
	YouTube Kind = "youtube"
	Rutube  Kind = "rutube"
	File    Kind = "file"
)

// Kinds lists every known provider kind.
func Kinds() []Kind {
	return []Kind{YouTube, Rutube, File}
}

func (k Kind) String() string {
	return string(k)
}

// Embeddable reports whether sources of this kind play inside a provider frame.
func (k Kind) Embeddable() bool {
	return k == YouTube || k == Rutube
}

// ParseKind maps a server-supplied kind onto a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case YouTube:
		return YouTube, true
	case Rutube:
		return Rutube, true
	case File:
		return File, true
	default:
		return "", false
	}
}

var (
	youtubeHosts = []string{"youtube.com", "youtube-nocookie.com", "youtu.be"}
	rutubeHosts  = []string{"rutube.ru"}
)

// Classify determines the provider of a raw URL by case-insensitive substring match.
// Empty or unrecognized input is a direct file.
func Classify(raw string) Kind {
	s := strings.ToLower(raw)

	switch {
	case containsAny(s, youtubeHosts):
		return YouTube
	case containsAny(s, rutubeHosts):
		return Rutube
	default:
		return File
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
