package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spacemonkeygo/errors"
)

func TestSource(t *testing.T) {
	Convey("Given a script file", t, func() {
		dir, err := os.MkdirTemp("", "watch")
		So(err, ShouldBeNil)
		Reset(func() { os.RemoveAll(dir) })
		path := filepath.Join(dir, "script.elf")
		So(os.WriteFile(path, []byte("let a = 1"), 0644), ShouldBeNil)
		src := NewSource(path, 5*time.Millisecond)

		Convey("Read returns the whole file", func() {
			text, err := src.Read()
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "let a = 1")
			So(src.Path(), ShouldEqual, path)
		})

		Convey("Wait returns once the content changes", func() {
			_, err := src.Read()
			So(err, ShouldBeNil)
			done := make(chan error, 1)
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				done <- src.Wait(ctx)
			}()
			time.Sleep(20 * time.Millisecond)
			So(os.WriteFile(path, []byte("let a = 2"), 0644), ShouldBeNil)
			So(<-done, ShouldBeNil)
		})

		Convey("Rewriting identical content does not count as a change", func() {
			_, err := src.Read()
			So(err, ShouldBeNil)
			So(os.WriteFile(path, []byte("let a = 1"), 0644), ShouldBeNil)
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			So(src.Wait(ctx), ShouldEqual, context.DeadlineExceeded)
		})

		Convey("Wait stops when cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			So(src.Wait(ctx), ShouldEqual, context.Canceled)
		})

		Convey("A missing file is an IO error", func() {
			_, err := NewSource(filepath.Join(dir, "nope.elf"), 0).Read()
			So(errors.IOError.Contains(err), ShouldBeTrue)
		})
	})
}
