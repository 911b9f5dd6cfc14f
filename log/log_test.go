package log

import (
	"bytes"
	"testing"

	"github.com/kinoteka-cli/kinoteka/filesystem"
	"github.com/kinoteka-cli/kinoteka/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestLog(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)

		Convey("Setup should succeed and emissions should be dropped", func() {
			So(Setup(), ShouldBeNil)
			So(enabled, ShouldBeFalse)
			So(func() { Infof("content %s", "abc") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		viper.Set(key.LogsJson, false)
		Reset(func() {
			viper.Set(key.LogsWrite, false)
			enabled = false
			logger = newDiscardLogger()
		})

		Convey("Setup should open the daily file", func() {
			So(Setup(), ShouldBeNil)
			So(enabled, ShouldBeTrue)
		})

		Convey("Emissions should reach the configured writer", func() {
			var buf bytes.Buffer
			enabled = true
			So(configure(&buf), ShouldBeNil)

			WithField("content", "abc").Info("mounted")
			Debugf("tick %d", 31)

			So(buf.String(), ShouldContainSubstring, "content=abc")
			So(buf.String(), ShouldContainSubstring, "tick 31")
		})

		Convey("An unknown level should fall back to info", func() {
			var buf bytes.Buffer
			enabled = true
			viper.Set(key.LogsLevel, "loud")
			So(configure(&buf), ShouldBeNil)

			Debug("hidden")
			Info("shown")
			So(buf.String(), ShouldNotContainSubstring, "hidden")
			So(buf.String(), ShouldContainSubstring, "shown")
		})
	})
}
