package live

import (
	"bytes"
	"strings"
	"testing"

	"github.com/inconshreveable/log15"
	. "github.com/smartystreets/goconvey/convey"

	"elf-lang/live/internal/evaluator"
	"elf-lang/live/internal/parser"
)

func TestSession(t *testing.T) {
	Convey("Given a session over a live evaluator", t, func() {
		var out bytes.Buffer
		ev := evaluator.New(&out)
		var rec recorded
		var warnings []string
		log := log15.New()
		log.SetHandler(log15.FuncHandler(func(r *log15.Record) error {
			if r.Lvl == log15.LvlWarn {
				warnings = append(warnings, r.Msg)
			}
			return nil
		}))
		sess := NewSession(ev, WithRecorder(&rec), WithLogger(log))

		value := func(name string) string {
			v, ok := ev.Lookup(name)
			So(ok, ShouldBeTrue)
			return evaluator.Format(v)
		}
		step := func(src string) *Report {
			r, err := sess.Step(src)
			So(err, ShouldBeNil)
			return r
		}

		base := `let A = || 1
let B = || 2
let f = |v| v + 100
let x = A()
let y = B()
let z = f(x)`

		Convey("The first iteration applies everything", func() {
			r := step(base)
			So(r.Iteration, ShouldEqual, 1)
			So(r.Dirty.Definitions.Sorted(), ShouldResemble, []string{"A", "B", "f"})
			So(r.Dirty.Names.Sorted(), ShouldResemble, []string{"x", "y", "z"})
			So(value("z"), ShouldEqual, "101")
			So(rec, ShouldHaveLength, 6)
			So(sess.Last(), ShouldEqual, r)
		})

		Convey("Re-running unchanged source does nothing", func() {
			step(base)
			names := ev.Names()
			rec = nil
			r := step(base)
			So(r.Dirty.Definitions, ShouldBeEmpty)
			So(r.Dirty.Names, ShouldBeEmpty)
			So(r.Applied, ShouldBeEmpty)
			So(rec, ShouldBeEmpty)
			So(ev.Names(), ShouldResemble, names)
			So(value("z"), ShouldEqual, "101")
		})

		Convey("Editing one Definition re-runs only what depends on it", func() {
			step(base)
			r := step(strings.Replace(base, "let B = || 2", "let B = || 20", 1))
			So(r.Dirty.Definitions.Sorted(), ShouldResemble, []string{"B"})
			So(r.Dirty.Names.Sorted(), ShouldResemble, []string{"y"})
			So(r.Applied, ShouldHaveLength, 2)
			So(value("y"), ShouldEqual, "20")
			So(value("x"), ShouldEqual, "1")
		})

		Convey("Dirtiness flows along inputs even when the unit is unchanged", func() {
			step(base)
			r := step(strings.Replace(base, "let A = || 1", "let A = || 2", 1))
			So(r.Dirty.Definitions.Sorted(), ShouldResemble, []string{"A"})
			So(r.Dirty.Names.Sorted(), ShouldResemble, []string{"x", "z"})
			So(value("z"), ShouldEqual, "102")
		})

		Convey("Editing a callee re-runs its callers and their derivations", func() {
			src := "let h = |v| v * 2\nlet g = |v| h(v) + 1\nlet r = g(5)"
			step(src)
			So(value("r"), ShouldEqual, "11")
			r := step(strings.Replace(src, "v * 2", "v * 3", 1))
			So(r.Dirty.Definitions.Sorted(), ShouldResemble, []string{"g", "h"})
			So(r.Dirty.Names.Sorted(), ShouldResemble, []string{"r"})
			So(value("r"), ShouldEqual, "16")
		})

		Convey("Opaque statements re-run every iteration and failures do not block", func() {
			src := `puts("tick")
missing(1)
puts("tock")
let A = || 1
let x = A()`
			r := step(src)
			So(r.Failures, ShouldHaveLength, 1)
			So(r.Failures[0].Stmt.Line, ShouldEqual, 2)
			So(ApplyError.Contains(r.Failures[0].Err), ShouldBeTrue)
			So(value("x"), ShouldEqual, "1")

			r = step(src)
			So(r.Applied, ShouldHaveLength, 3)
			So(out.String(), ShouldEqual, "\"tick\" \n\"tock\" \n\"tick\" \n\"tock\" \n")
		})

		Convey("Unsupported statements warn and do not halt", func() {
			r := step("[1, 2] |> map(|x| x)\nlet A = || 1")
			So(r.Script.Opaque, ShouldHaveLength, 1)
			So(warnings, ShouldContain, "statement not supported for tracking, re-running every iteration")
			So(r.Failures, ShouldBeEmpty)
		})

		Convey("A failing Derivation is retried only after it is dirtied again", func() {
			step("let f = |v| missing(v)\nlet n = 5\nlet t = f(n)")
			So(sess.Last().Failures, ShouldHaveLength, 1)
			_, ok := ev.Lookup("t")
			So(ok, ShouldBeFalse)

			r := step("let f = |v| missing(v)\nlet n = 5\nlet t = f(n)")
			So(r.Dirty.Names, ShouldBeEmpty)

			r = step("let f = |v| v\nlet n = 5\nlet t = f(n)")
			So(r.Failures, ShouldBeEmpty)
			So(value("t"), ShouldEqual, "5")
		})

		Convey("A parse failure changes nothing", func() {
			first := step(base)
			snap := sess.Snapshot()

			r, err := sess.Step(base + "\nlet broken = (")
			So(r, ShouldBeNil)
			So(parser.Error.Contains(err), ShouldBeTrue)
			So(sess.Last(), ShouldEqual, first)
			So(sess.Snapshot(), ShouldResemble, snap)
			So(value("z"), ShouldEqual, "101")

			r = step(base)
			So(r.Iteration, ShouldEqual, 2)
			So(r.Dirty.Empty(), ShouldBeTrue)
		})

		Convey("Removed derivations leave their bindings behind", func() {
			step(base)
			r := step("let A = || 1\nlet x = A()")
			So(r.Applied, ShouldBeEmpty)
			So(value("y"), ShouldEqual, "2")
		})

		Convey("A shadowed declaration warns and the last one wins", func() {
			step("let A = || 1\nlet A = || 2\nlet x = A()")
			So(value("x"), ShouldEqual, "2")
			So(warnings, ShouldContain, "declaration shadowed by a later one")
		})

		Convey("Statements between two declarations of a name see the earlier one", func() {
			src := `let A = || 1
let B = || 2
let f = |v| v + 100
let x = A()
let y = f(x)
let x = B()`
			r := step(src)
			So(r.Failures, ShouldBeEmpty)
			So(value("y"), ShouldEqual, "101")
			So(value("x"), ShouldEqual, "2")

			Convey("and keep it across quiet iterations", func() {
				r := step(src)
				So(r.Dirty.Empty(), ShouldBeTrue)
				So(value("y"), ShouldEqual, "101")
				So(value("x"), ShouldEqual, "2")
			})

			Convey("and follow edits to what the earlier one derives from", func() {
				r := step(strings.Replace(src, "let A = || 1", "let A = || 5", 1))
				So(r.Dirty.Names.Sorted(), ShouldResemble, []string{"x", "y"})
				So(value("y"), ShouldEqual, "105")
				So(value("x"), ShouldEqual, "2")
			})

			Convey("and follow edits to the earlier declaration itself", func() {
				r := step(strings.Replace(src, "let x = A()", "let x = B()", 1))
				So(r.Changes.Derivations.Sorted(), ShouldResemble, []string{"x"})
				So(value("y"), ShouldEqual, "102")
			})

			Convey("and re-run once the name is declared only once", func() {
				r := step(strings.Replace(src, "let x = A()\n", "", 1))
				So(r.Changes.Derivations.Sorted(), ShouldResemble, []string{"x"})
				So(r.Failures, ShouldBeEmpty)
				So(value("y"), ShouldEqual, "102")
			})
		})
	})
}
