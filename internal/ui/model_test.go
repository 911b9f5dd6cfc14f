package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("Without a notification the view should be unchanged", func() {
			So(m.View("card\nfooter"), ShouldEqual, "card\nfooter")
		})

		Convey("A notification should be appended to the last line", func() {
			So(m.Update(Notify("Source unavailable")()), ShouldNotBeNil)
			So(m.Current(), ShouldEqual, "Source unavailable")

			view := m.View("card\nfooter")
			So(view, ShouldStartWith, "card\nfooter  ")
			So(view, ShouldContainSubstring, "Source unavailable")
		})

		Convey("Only the latest timer should clear it", func() {
			m.Update(NotificationMsg("first"))
			stale := ClearNotificationMsg{at: m.notifiedAt.Add(-1)}
			m.Update(NotificationMsg("second"))

			m.Update(stale)
			So(m.Current(), ShouldEqual, "second")

			m.Update(ClearNotificationMsg{at: m.notifiedAt})
			So(m.Current(), ShouldBeEmpty)
		})
	})
}
