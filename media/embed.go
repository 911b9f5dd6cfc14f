package media

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/samber/mo"
)

const (
	youtubeEmbedBase = "https://www.youtube-nocookie.com/embed/"
	youtubeParams    = "rel=0&modestbranding=1&playsinline=1&iv_load_policy=3&fs=1"
	rutubeEmbedBase  = "https://rutube.ru/play/embed/"
)

var (
	youtubeID = regexp.MustCompile(`(?i:youtube(?:-nocookie)?\.com/(?:watch\?(?:[^#]*?&)?v=|embed/)|youtu\.be/)([A-Za-z0-9_-]+)`)
	rutubeID  = regexp.MustCompile(`(?i)rutube\.ru/video/([a-f0-9]{32})`)
)

// ToEmbed rewrites a provider URL into its embeddable form. Input that cannot be
// rewritten is returned unchanged. ToEmbed(ToEmbed(u, o), o) == ToEmbed(u, o).
func ToEmbed(raw, origin string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return raw
	}

	switch Classify(s) {
	case YouTube:
		return youtubeEmbed(s, origin).OrElse(raw)
	case Rutube:
		return rutubeEmbed(s).OrElse(raw)
	default:
		return raw
	}
}

// WithAutoplay appends autoplay=1 unless the URL already requests it.
func WithAutoplay(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Query().Get("autoplay") == "1" {
		return raw
	}

	if strings.Contains(raw, "?") {
		return raw + "&autoplay=1"
	}
	return raw + "?autoplay=1"
}

// YouTubeID extracts the video id from the watch?v=, youtu.be/ or embed/ forms.
func YouTubeID(raw string) (string, bool) {
	match := youtubeID.FindStringSubmatch(raw)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// RutubeID extracts the 32-character hexadecimal id from a /video/ID path.
func RutubeID(raw string) (string, bool) {
	match := rutubeID.FindStringSubmatch(raw)
	if match == nil {
		return "", false
	}
	return match[1], true
}

func youtubeEmbed(raw, origin string) mo.Option[string] {
	id, ok := YouTubeID(raw)
	if !ok {
		return mo.None[string]()
	}

	embed := youtubeEmbedBase + id + "?" + youtubeParams
	if origin != "" {
		embed += "&origin=" + url.QueryEscape(origin)
	}

	return mo.Some(embed)
}

func rutubeEmbed(raw string) mo.Option[string] {
	lower := strings.ToLower(raw)

	if strings.Contains(lower, "/play/embed/") {
		base, query, _ := strings.Cut(raw, "?")
		params, err := url.ParseQuery(query)
		if err != nil {
			params = url.Values{}
		}
		params.Set("autoplay", "1")
		params.Set("mute", "0")
		return mo.Some(base + "?" + params.Encode())
	}

	if id, ok := RutubeID(raw); ok {
		return mo.Some(rutubeEmbedBase + id + "/?autoplay=1&mute=0")
	}

	return mo.None[string]()
}
