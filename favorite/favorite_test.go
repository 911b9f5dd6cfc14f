package favorite

import (
	"context"
	"errors"
	"testing"

	"github.com/kinoteka-cli/kinoteka/api"
	"github.com/kinoteka-cli/kinoteka/session"
	"github.com/kinoteka-cli/kinoteka/util"
	. "github.com/smartystreets/goconvey/convey"
)

type client struct {
	status    bool
	statusErr error
	toggled   bool
	toggleErr error
	during    func()
	toggles   int
}

func (c *client) FavoriteStatus(context.Context, string) (bool, error) {
	return c.status, c.statusErr
}

func (c *client) ToggleFavorite(context.Context, string) (bool, error) {
	c.toggles++
	if c.during != nil {
		c.during()
	}
	return c.toggled, c.toggleErr
}

func TestToggle(t *testing.T) {
	Convey("Given a toggle", t, func() {
		c := &client{}
		var alerts []string
		toggle := New("abc", c, session.AlerterFunc(func(m string) { alerts = append(alerts, m) }))

		Convey("Load should take the service status", func() {
			c.status = true
			toggle.Load(context.Background())
			So(toggle.Favorite(), ShouldBeTrue)
		})

		Convey("Load should stay silent on errors", func() {
			c.statusErr = api.ErrNetwork
			toggle.Load(context.Background())
			So(toggle.Favorite(), ShouldBeFalse)
			So(alerts, ShouldBeEmpty)
		})

		Convey("Click should flip the state before the request completes", func() {
			c.toggled = true
			var during, enabled bool
			c.during = func() {
				during = toggle.Favorite()
				enabled = toggle.Enabled()
			}

			So(toggle.Click(context.Background()), ShouldBeNil)
			So(during, ShouldBeTrue)
			So(enabled, ShouldBeFalse)
			So(toggle.Favorite(), ShouldBeTrue)
			So(toggle.Enabled(), ShouldBeTrue)
		})

		Convey("The service answer should win", func() {
			c.toggled = false
			So(toggle.Click(context.Background()), ShouldBeNil)
			So(toggle.Favorite(), ShouldBeFalse)
		})

		Convey("A server error should roll back and alert", func() {
			c.status = true
			toggle.Load(context.Background())
			c.toggleErr = &api.StatusError{Code: 500}

			err := toggle.Click(context.Background())
			So(errors.Is(err, api.ErrServer), ShouldBeTrue)
			So(toggle.Favorite(), ShouldBeTrue)
			So(toggle.Enabled(), ShouldBeTrue)
			So(alerts, ShouldResemble, []string{MsgFailed})
		})

		Convey("A network error should roll back with its own alert", func() {
			c.toggleErr = api.ErrNetwork
			So(toggle.Click(context.Background()), ShouldNotBeNil)
			So(toggle.Favorite(), ShouldBeFalse)
			So(alerts, ShouldResemble, []string{MsgOffline})
		})

		Convey("A click while one is in flight should be refused", func() {
			var nested error
			c.during = func() { nested = toggle.Click(context.Background()) }
			So(toggle.Click(context.Background()), ShouldBeNil)
			So(nested, ShouldEqual, util.ErrBusy)
			So(c.toggles, ShouldEqual, 1)
		})
	})
}
