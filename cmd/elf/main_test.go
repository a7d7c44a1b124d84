package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCommands(t *testing.T) {
	Convey("Given a script on disk", t, func() {
		dir, err := os.MkdirTemp("", "elf")
		So(err, ShouldBeNil)
		Reset(func() { os.RemoveAll(dir) })
		path := filepath.Join(dir, "script.elf")
		So(os.WriteFile(path, []byte("let a = 1 + 2\na * 2"), 0644), ShouldBeNil)
		var stdout, stderr bytes.Buffer
		run := func(args ...string) int {
			return Main(append([]string{"elf"}, args...), &stdout, &stderr)
		}

		Convey("run prints the last value", func() {
			So(run("run", path), ShouldEqual, exitSuccess)
			So(stdout.String(), ShouldEqual, "6\n")
		})

		Convey("run reports evaluation errors", func() {
			So(os.WriteFile(path, []byte("1 / 0"), 0644), ShouldBeNil)
			So(run("run", path), ShouldEqual, exitFailure)
			So(stdout.String(), ShouldStartWith, "[Error] ")
			So(stdout.String(), ShouldContainSubstring, "Division by zero")
		})

		Convey("tokens prints one JSON object per token", func() {
			So(os.WriteFile(path, []byte("let a"), 0644), ShouldBeNil)
			So(run("tokens", path), ShouldEqual, exitSuccess)
			So(stdout.String(), ShouldEqual, "{\"type\":\"LET\",\"value\":\"let\"}\n{\"type\":\"ID\",\"value\":\"a\"}\n")
		})

		Convey("ast prints the program without positions", func() {
			So(run("ast", path), ShouldEqual, exitSuccess)
			So(stdout.String(), ShouldContainSubstring, `"type": "Program"`)
			So(stdout.String(), ShouldContainSubstring, `"name": "a"`)
			So(stdout.String(), ShouldNotContainSubstring, "Line")
		})

		Convey("ast refuses a broken script", func() {
			So(os.WriteFile(path, []byte("let a = ("), 0644), ShouldBeNil)
			So(run("ast", path), ShouldEqual, exitFailure)
			So(stderr.String(), ShouldContainSubstring, "line 1")
		})

		Convey("A missing path is a usage error", func() {
			So(run("run"), ShouldEqual, exitBadArgs)
			So(run("live"), ShouldEqual, exitBadArgs)
			So(stderr.String(), ShouldContainSubstring, "requires exactly one path")
		})

		Convey("An unreadable file fails", func() {
			So(run("run", filepath.Join(dir, "nope.elf")), ShouldEqual, exitFailure)
		})
	})
}
