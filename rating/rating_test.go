package rating

import (
	"context"
	"errors"
	"testing"

	"github.com/kinoteka-cli/kinoteka/api"
	"github.com/kinoteka-cli/kinoteka/session"
	"github.com/kinoteka-cli/kinoteka/util"
	. "github.com/smartystreets/goconvey/convey"
)

type rater struct {
	values  []int
	average float64
	err     error
	during  func()
}

func (r *rater) Rate(_ context.Context, _ string, value int) (float64, error) {
	r.values = append(r.values, value)
	if r.during != nil {
		r.during()
	}
	return r.average, r.err
}

func TestValue(t *testing.T) {
	Convey("Half steps should round half-up to whole stars", t, func() {
		So(Value(1), ShouldEqual, 1)
		So(Value(2), ShouldEqual, 1)
		So(Value(6), ShouldEqual, 3)
		So(Value(7), ShouldEqual, 4)
		So(Value(10), ShouldEqual, 5)
	})
}

func TestWidget(t *testing.T) {
	Convey("Given a widget with an average of 3.5", t, func() {
		client := &rater{average: 4.26}
		var alerts []string
		w := New("abc", client, 3.5, session.AlerterFunc(func(m string) { alerts = append(alerts, m) }), nil)

		So(w.Fill(), ShouldEqual, 70)
		So(w.Label(), ShouldEqual, "3.5")

		Convey("Hover should preview and Leave should restore", func() {
			w.Hover(7)
			So(w.Fill(), ShouldEqual, 70)
			w.Hover(2)
			So(w.Fill(), ShouldEqual, 20)
			w.Hover(14)
			So(w.Fill(), ShouldEqual, 100)
			w.Leave()
			So(w.Fill(), ShouldEqual, 70)
		})

		Convey("Click should send the whole-star value and take the server average", func() {
			So(w.Click(context.Background(), 6), ShouldBeNil)
			So(client.values, ShouldResemble, []int{3})
			So(w.Average(), ShouldEqual, 4.3)
			So(w.Label(), ShouldEqual, "4.3")
			So(w.Fill(), ShouldEqual, 86)
			So(w.Busy(), ShouldBeFalse)
		})

		Convey("A failed click should restore the fill and alert", func() {
			client.err = api.ErrNetwork
			err := w.Click(context.Background(), 9)
			So(errors.Is(err, api.ErrNetwork), ShouldBeTrue)
			So(w.Average(), ShouldEqual, 3.5)
			So(w.Fill(), ShouldEqual, 70)
			So(alerts, ShouldResemble, []string{MsgFailed})
		})

		Convey("Out of range steps should be rejected", func() {
			So(w.Click(context.Background(), 0), ShouldNotBeNil)
			So(w.Click(context.Background(), 11), ShouldNotBeNil)
			So(client.values, ShouldBeEmpty)
		})
	})

	Convey("Given a guard shared between two widgets", t, func() {
		guard := &util.Guard{}
		other := New("def", &rater{}, 0, nil, guard)
		client := &rater{average: 5}
		w := New("abc", client, 0, nil, guard)

		Convey("A click during another request should be refused", func() {
			var nested error
			client.during = func() {
				So(other.Busy(), ShouldBeTrue)
				nested = other.Click(context.Background(), 4)
			}

			So(w.Click(context.Background(), 10), ShouldBeNil)
			So(nested, ShouldEqual, util.ErrBusy)
			So(w.Busy(), ShouldBeFalse)
		})
	})
}
