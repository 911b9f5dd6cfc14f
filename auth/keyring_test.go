package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func init() {
	keyring.MockInit()
}

func TestSession(t *testing.T) {
	Convey("Given an empty keyring", t, func() {
		_ = DeleteSession()

		Convey("GetSession should report no session", func() {
			_, err := GetSession()
			So(err, ShouldEqual, ErrNoSession)
		})

		Convey("Deleting again should be harmless", func() {
			So(DeleteSession(), ShouldBeNil)
		})

		Convey("An empty session should not be stored", func() {
			So(SetSession(Session{CSRF: "x"}), ShouldNotBeNil)
		})
	})

	Convey("Given a stored session", t, func() {
		s := Session{ID: "abc", CSRF: "token"}
		So(SetSession(s), ShouldBeNil)
		Reset(func() { _ = DeleteSession() })

		Convey("It should round trip", func() {
			got, err := GetSession()
			So(err, ShouldBeNil)
			So(got, ShouldResemble, s)
		})

		Convey("It should expose both cookies", func() {
			cookies := s.Cookies()
			So(cookies, ShouldHaveLength, 2)
			So(cookies[0].Name, ShouldEqual, SessionCookie)
			So(cookies[1].Name, ShouldEqual, CSRFCookie)
		})
	})
}
