package live

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spacemonkeygo/errors"
)

func TestMessage(t *testing.T) {
	Convey("Messages drop the class names of every layer", t, func() {
		outer := errors.NewClass("Outer")
		So(Message(fmt.Errorf("plain")), ShouldEqual, "plain")
		So(Message(ApplyError.Wrap(fmt.Errorf("boom"))), ShouldEqual, "boom")
		So(Message(ApplyError.Wrap(outer.Wrap(fmt.Errorf("deep")))), ShouldEqual, "deep")
	})
}
