package query

import (
	"testing"

	"github.com/kinoteka-cli/kinoteka/filesystem"
	"github.com/kinoteka-cli/kinoteka/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuery(t *testing.T) {
	Convey("Given remembered queries", t, func() {
		viper.Set(key.SearchShowQuerySuggestions, true)

		So(Remember("Stalker", 1), ShouldBeNil)
		So(Remember("solaris", 1), ShouldBeNil)
		So(Remember("  SOLARIS ", 10), ShouldBeNil)
		So(Remember("   ", 5), ShouldBeNil)

		Convey("Suggestions should match fuzzily by rank", func() {
			So(SuggestMany("sl"), ShouldResemble, []string{"solaris", "stalker"})
			So(Suggest("stl").MustGet(), ShouldEqual, "stalker")
		})

		Convey("A query should not suggest itself", func() {
			So(Suggest("solaris").IsAbsent(), ShouldBeTrue)
		})

		Convey("Remembering should refresh cached suggestions", func() {
			So(SuggestMany("sl")[0], ShouldEqual, "solaris")
			So(Remember("stalker", 100), ShouldBeNil)
			So(SuggestMany("sl")[0], ShouldEqual, "stalker")
		})

		Convey("Nothing should be suggested when disabled", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			So(SuggestMany("sl"), ShouldBeEmpty)
		})
	})

	Convey("sanitize should collapse case and whitespace", t, func() {
		So(sanitize("  The   Mirror "), ShouldEqual, "the mirror")
	})
}
