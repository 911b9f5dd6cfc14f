package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/kinoteka-cli/kinoteka/filesystem"
	"github.com/kinoteka-cli/kinoteka/where"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type entry struct {
	Titles []string `json:"titles"`
}

func TestKey(t *testing.T) {
	Convey("Key should ignore case and spaces", t, func() {
		So(Key("The Matrix", "movie"), ShouldEqual, Key("thematrix", "MOVIE"))
		So(Key("matrix", "movie"), ShouldNotEqual, Key("matrix", "series"))
	})
}

func TestReadWrite(t *testing.T) {
	Convey("Given a written entry", t, func() {
		key := Key("matrix", "")
		So(Write(key, entry{Titles: []string{"The Matrix"}}), ShouldBeNil)

		Convey("It should be read back while fresh", func() {
			var got entry
			So(Read(key, &got), ShouldBeTrue)
			So(got.Titles, ShouldResemble, []string{"The Matrix"})
		})

		Convey("A stale entry should be ignored and collected", func() {
			old := time.Now().Add(-2 * TTL)
			path := filepath.Join(where.Responses(), key)
			So(filesystem.API().Chtimes(path, old, old), ShouldBeNil)

			var got entry
			So(Read(key, &got), ShouldBeFalse)
			So(CollectGarbage(), ShouldBeGreaterThanOrEqualTo, 1)

			exists, _ := filesystem.API().Exists(path)
			So(exists, ShouldBeFalse)
		})
	})

	Convey("A missing entry should not be found", t, func() {
		var got entry
		So(Read(Key("nothing"), &got), ShouldBeFalse)
	})
}
