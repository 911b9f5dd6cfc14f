package config

import (
	"testing"
	"time"

	"github.com/kinoteka-cli/kinoteka/filesystem"
	"github.com/kinoteka-cli/kinoteka/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("player.completion_percentage")
			So(result, ShouldEqual, "player_completion_percentage")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.ServerURL]

		Convey("Env should carry the application prefix once", func() {
			So(field.Env(), ShouldEqual, "KINOTEKA_SERVER_URL")
		})

		Convey("typeName should describe the default value", func() {
			So(field.typeName(), ShouldEqual, "string")
			interval := Default[key.ProgressInterval]
			So(interval.typeName(), ShouldEqual, "int")
		})

		Convey("Section should be the key prefix", func() {
			So(field.Section(), ShouldEqual, "server")
		})

		Convey("Pretty should mention the key and its env variable", func() {
			So(field.Pretty(), ShouldContainSubstring, key.ServerURL)
			So(field.Pretty(), ShouldContainSubstring, "KINOTEKA_SERVER_URL")
		})
	})
}

func TestServer(t *testing.T) {
	Convey("Given a configured server url", t, func() {
		_ = Setup()
		viper.Set(key.ServerURL, "https://kino.example.com/base/")
		viper.Set(key.ServerOrigin, "")
		Reset(func() {
			viper.Set(key.ServerURL, Default[key.ServerURL].Value)
			viper.Set(key.ServerOrigin, "")
			viper.Set(key.ServerTimeout, Default[key.ServerTimeout].Value)
		})

		Convey("Origin should be derived from it", func() {
			So(Origin(), ShouldEqual, "https://kino.example.com")
		})

		Convey("An explicit origin should win", func() {
			viper.Set(key.ServerOrigin, "https://www.example.com/")
			So(Origin(), ShouldEqual, "https://www.example.com")
		})

		Convey("Non-http urls should be rejected", func() {
			viper.Set(key.ServerURL, "ftp://kino.example.com")
			_, err := ServerURL()
			So(err, ShouldNotBeNil)
		})

		Convey("Timeout should fall back when unset", func() {
			viper.Set(key.ServerTimeout, 0)
			So(Timeout(), ShouldEqual, 30*time.Second)
		})
	})
}
