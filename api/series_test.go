package api

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func decodeSeasons(doc string) SeasonTree {
	var raw []rawSeason
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		panic(err)
	}
	return normalizeSeasons(raw)
}

func TestNormalizeSeasons(t *testing.T) {
	Convey("Given seasons without numbers", t, func() {
		tree := decodeSeasons(`[{"episodes":[{},{}]},{"episodes":[]},{"title":" "}]`)

		Convey("They should be numbered by position", func() {
			So(len(tree), ShouldEqual, 3)
			for i, season := range tree {
				So(season.Number, ShouldEqual, i+1)
			}
		})

		Convey("They should get default labels", func() {
			So(tree[0].Label, ShouldEqual, "Season 1")
			So(tree[2].Label, ShouldEqual, "Season 3")
		})

		Convey("Their episodes should be numbered and labeled by position", func() {
			So(tree[0].Episodes[1].Number, ShouldEqual, 2)
			So(tree[0].Episodes[1].Label, ShouldEqual, "Episode 2")
		})
	})

	Convey("Given seasons with mixed number fields", t, func() {
		tree := decodeSeasons(`[
			{"season_num": 3, "number": 9, "display_title": "  Final  ", "title": "ignored"},
			{"number": "2", "title": "Second"},
			{"num": 0},
			{"season_num": -4}
		]`)

		Convey("The first present field should win", func() {
			So(tree[0].Number, ShouldEqual, 3)
			So(tree[1].Number, ShouldEqual, 2)
		})

		Convey("Non-positive numbers should fall back to the position", func() {
			So(tree[2].Number, ShouldEqual, 3)
			So(tree[3].Number, ShouldEqual, 4)
		})

		Convey("Labels should prefer the display title", func() {
			So(tree[0].Label, ShouldEqual, "Final")
			So(tree[1].Label, ShouldEqual, "Second")
			So(tree[2].Label, ShouldEqual, "Season 3")
		})
	})

	Convey("Given episodes with titles", t, func() {
		tree := decodeSeasons(`[{"number":1,"episodes":[{"number":5,"title":"Pilot"},{"episode_num":6}]}]`)

		Convey("Titles should become labels", func() {
			season, ok := tree.Season(1)
			So(ok, ShouldBeTrue)

			pilot, ok := season.Episode(5)
			So(ok, ShouldBeTrue)
			So(pilot.Label, ShouldEqual, "Pilot")

			next, ok := season.Episode(6)
			So(ok, ShouldBeTrue)
			So(next.Label, ShouldEqual, "Episode 6")
		})

		Convey("Missing seasons should not be found", func() {
			_, ok := tree.Season(2)
			So(ok, ShouldBeFalse)
		})
	})
}
