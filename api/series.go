package api

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// SeasonTree lists the seasons of a series in display order.
type SeasonTree []Season

// Season is a normalized season. Number is always positive.
type Season struct {
	Number   int       `json:"number"`
	Label    string    `json:"label"`
	Episodes []Episode `json:"episodes"`
}

// Episode is a normalized episode. Number is always positive.
type Episode struct {
	Number int    `json:"number"`
	Title  string `json:"title,omitempty"`
	Label  string `json:"label"`
	URL    string `json:"url,omitempty"`
}

// Season looks a season up by number.
func (t SeasonTree) Season(number int) (Season, bool) {
	return lo.Find(t, func(s Season) bool { return s.Number == number })
}

// Episode looks an episode up by number.
func (s Season) Episode(number int) (Episode, bool) {
	return lo.Find(s.Episodes, func(e Episode) bool { return e.Number == number })
}

type rawSeason struct {
	SeasonNum    *number      `json:"season_num"`
	Number       *number      `json:"number"`
	Num          *number      `json:"num"`
	DisplayTitle string       `json:"display_title"`
	Title        string       `json:"title"`
	Episodes     []rawEpisode `json:"episodes"`
}

type rawEpisode struct {
	Number     *number `json:"number"`
	EpisodeNum *number `json:"episode_num"`
	Num        *number `json:"num"`
	Title      string  `json:"title"`
	URL        string  `json:"url"`
}

// normalizeSeasons fills in missing numbers and labels.
// A number that is missing or not positive falls back to its 1-based position.
func normalizeSeasons(raw []rawSeason) SeasonTree {
	tree := make(SeasonTree, 0, len(raw))

	for i, s := range raw {
		n := ordinal(i, s.SeasonNum, s.Number, s.Num)

		label := firstNonEmpty(s.DisplayTitle, s.Title)
		if label == "" {
			label = fmt.Sprintf("Season %d", n)
		}

		episodes := make([]Episode, 0, len(s.Episodes))
		for j, e := range s.Episodes {
			en := ordinal(j, e.Number, e.EpisodeNum, e.Num)
			title := strings.TrimSpace(e.Title)

			episodes = append(episodes, Episode{
				Number: en,
				Title:  title,
				Label:  lo.Ternary(title != "", title, fmt.Sprintf("Episode %d", en)),
				URL:    strings.TrimSpace(e.URL),
			})
		}

		tree = append(tree, Season{Number: n, Label: label, Episodes: episodes})
	}

	return tree
}

func ordinal(index int, candidates ...*number) int {
	if n, ok := lo.Coalesce(candidates...); ok {
		if v := int(*n); v > 0 && float64(v) == float64(*n) {
			return v
		}
	}
	return index + 1
}
