package util

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/kinoteka-cli/kinoteka/filesystem"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("Given content titles", t, func() {
		Convey("Separators and punctuation should become single underscores", func() {
			So(SanitizeFilename("Alien: Romulus"), ShouldEqual, "Alien_Romulus")
			So(SanitizeFilename("file__name.txt"), ShouldEqual, "file_name.txt")
		})

		Convey("Leading and trailing separators should be trimmed", func() {
			So(SanitizeFilename("-file-name-"), ShouldEqual, "file-name")
			So(SanitizeFilename("  ?! "), ShouldEqual, "")
		})

		Convey("Cyrillic letters should survive", func() {
			So(SanitizeFilename("Брат 2"), ShouldEqual, "Брат_2")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "season", "seasons"), ShouldEqual, "1 season")
		So(Quantify(0, "season", "seasons"), ShouldEqual, "0 seasons")
		So(Quantify(8, "episode", "episodes"), ShouldEqual, "8 episodes")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("history file"), ShouldEqual, "History file")
		So(Capitalize("кинотека"), ShouldEqual, "Кинотека")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestDelete(t *testing.T) {
	Convey("Given files on the virtual filesystem", t, func() {
		filesystem.SetMemMapFs()
		vfs := filesystem.API()
		So(vfs.MkdirAll("/frames/nested", 0o755), ShouldBeNil)
		So(afero.WriteFile(vfs, "/frames/nested/a.html", []byte("x"), 0o644), ShouldBeNil)

		Convey("A directory should be removed with its contents", func() {
			So(Delete("/frames"), ShouldBeNil)
			exists, _ := afero.Exists(vfs, "/frames/nested/a.html")
			So(exists, ShouldBeFalse)
		})

		Convey("A missing path should report not exist", func() {
			So(errors.Is(Delete("/missing"), fs.ErrNotExist), ShouldBeTrue)
		})
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]
		s.Push(1)
		s.Push(2)
		So(s.Len(), ShouldEqual, 2)
		So(s.Peek(), ShouldEqual, 2)
		item := s.Pop()
		So(item, ShouldEqual, 2)
		item = s.Pop()
		So(item, ShouldEqual, 1)
		item = s.Pop()
		So(item, ShouldEqual, 0)
	})
}

func TestGuard(t *testing.T) {
	Convey("Given an idle guard", t, func() {
		var g Guard
		So(g.Busy(), ShouldBeFalse)

		Convey("The first acquire should win and the second should fail", func() {
			So(g.TryAcquire(), ShouldBeTrue)
			So(g.Busy(), ShouldBeTrue)
			So(g.TryAcquire(), ShouldBeFalse)

			Convey("Release should make it available again", func() {
				g.Release()
				So(g.Busy(), ShouldBeFalse)
				So(g.TryAcquire(), ShouldBeTrue)
			})
		})
	})
}
