package history

import (
	"fmt"
	"time"
)

// Record is the local mirror of the last progress reported for a movie or an episode.
type Record struct {
	ContentID  string    `json:"content_id"`
	Title      string    `json:"title"`
	Season     int       `json:"season"`
	Episode    int       `json:"episode"`
	Position   int       `json:"position"`
	Duration   int       `json:"duration"`
	Percentage float64   `json:"percentage"`
	Completed  bool      `json:"completed"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (r *Record) encode() string {
	return fmt.Sprintf("%s/%d/%d", r.ContentID, r.Season, r.Episode)
}

// IsEpisode reports whether the record belongs to a series episode.
func (r *Record) IsEpisode() bool {
	return r.Season > 0 && r.Episode > 0
}

func (r *Record) String() string {
	name := r.Title
	if name == "" {
		name = r.ContentID
	}

	if r.IsEpisode() {
		return fmt.Sprintf("%s S%02dE%02d : %.0f%%", name, r.Season, r.Episode, r.Percentage)
	}
	return fmt.Sprintf("%s : %.0f%%", name, r.Percentage)
}

// percentage derives the watched share of a position, 0 when the duration is unknown.
func percentage(position, duration int) float64 {
	if duration <= 0 {
		return 0
	}

	p := float64(position) / float64(duration) * 100
	if p > 100 {
		return 100
	}
	return p
}
