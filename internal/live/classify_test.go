package live

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"elf-lang/live/internal/parser"
)

func classify(src string) *Script {
	prog, err := parser.Parse(src)
	So(err, ShouldBeNil)
	return Classify(prog)
}

func TestClassify(t *testing.T) {
	Convey("Classifying top-level statements", t, func() {
		Convey("Every statement gets a kind in source order", func() {
			s := classify(`// notes
let A = || 1
let B = || 2
let x = A()
let y = B()
puts(x)
let n = 10`)
			var kinds []Kind
			for _, st := range s.Statements {
				kinds = append(kinds, st.Kind)
			}
			So(kinds, ShouldResemble, []Kind{
				KindComment, KindDefinition, KindDefinition,
				KindDerivation, KindDerivation, KindOpaque, KindOpaque,
			})
			So(s.Definitions, ShouldContainKey, "A")
			So(s.Derivations["x"].Unit, ShouldEqual, "A")
			So(s.Opaque, ShouldHaveLength, 2)
			So(s.Opaque[0].Line, ShouldEqual, 6)
			So(s.Statements[0].Fingerprint, ShouldEqual, "")
		})

		Convey("A Definition records the names its body invokes", func() {
			s := classify("let g = |v| h(v) + k(v, sq) |> inc")
			So(s.Definitions["g"].Calls, ShouldResemble, []string{"h", "inc", "k", "sq"})
		})

		Convey("Parameters are not counted as calls", func() {
			s := classify("let apply = |f, x| f(x) >> wrap")
			So(s.Definitions["apply"].Calls, ShouldResemble, []string{"wrap"})
		})

		Convey("let mut shapes are tracked with their mutability", func() {
			s := classify("let mut f = |x| x\nlet mut t = f(1)")
			So(s.Definitions["f"].Mutable, ShouldBeTrue)
			So(s.Derivations["t"].Mutable, ShouldBeTrue)
		})

		Convey("A Derivation records only its bare-name inputs", func() {
			s := classify("let t = f(a, 1, a, \"s\", b, g(c))")
			d := s.Derivations["t"]
			So(d.Unit, ShouldEqual, "f")
			So(d.Inputs, ShouldResemble, []string{"a", "b"})
		})

		Convey("Calls through anything but a bare name are opaque", func() {
			s := classify("let z = fs[0](1)\nlet w = make()(1)\nx = f(1)")
			So(s.Derivations, ShouldBeEmpty)
			So(s.Opaque, ShouldHaveLength, 3)
		})

		Convey("The last declaration of a name wins", func() {
			s := classify("let f = || 1\nlet f = || 2\nlet f = g(1)\nlet h = || 3")
			So(s.Definitions, ShouldNotContainKey, "f")
			So(s.Derivations["f"].Unit, ShouldEqual, "g")
			So(s.Derivations["f"].Stmt.Index, ShouldEqual, 2)
			So(s.Shadowed, ShouldHaveLength, 2)
			So(s.Shadowed[0].Index, ShouldEqual, 0)
			So(s.Shadowed[1].Index, ShouldEqual, 1)
			So(s.DefinitionsInOrder(), ShouldHaveLength, 1)
			So(s.Redeclared.Sorted(), ShouldResemble, []string{"f"})
		})

		Convey("Fingerprints ignore layout and position", func() {
			a := classify("let f = |x| x + 1")
			b := classify("\n\n   let f=|x|   x+1")
			c := classify("let f = |x| x + 2")
			So(a.Statements[0].Fingerprint, ShouldNotEqual, "")
			So(b.Statements[0].Fingerprint, ShouldEqual, a.Statements[0].Fingerprint)
			So(c.Statements[0].Fingerprint, ShouldNotEqual, a.Statements[0].Fingerprint)
			So(b.Statements[0].Text, ShouldEqual, "let f = |x| x + 1")
		})

		Convey("let and let mut fingerprint differently", func() {
			a := classify("let f = |x| x")
			b := classify("let mut f = |x| x")
			So(b.Statements[0].Fingerprint, ShouldNotEqual, a.Statements[0].Fingerprint)
		})
	})
}

func TestDetectChanges(t *testing.T) {
	Convey("Detecting changes between parses", t, func() {
		prev := NewSnapshot(classify("let A = || 1\nlet B = || 2\nlet x = A()\nlet y = B()"))

		Convey("The first parse changes everything", func() {
			ch := DetectChanges(Snapshot{}, classify("let A = || 1\nlet x = A()"))
			So(ch.Definitions.Sorted(), ShouldResemble, []string{"A"})
			So(ch.Derivations.Sorted(), ShouldResemble, []string{"x"})
		})

		Convey("Moving and reformatting statements is not a change", func() {
			ch := DetectChanges(prev, classify("let y = B( )\nlet B = ||   2\n\nlet A = || 1\nlet x = A()"))
			So(ch.Empty(), ShouldBeTrue)
		})

		Convey("Edited and new statements are changes", func() {
			ch := DetectChanges(prev, classify("let A = || 10\nlet B = || 2\nlet x = A()\nlet y = B(1)\nlet z = B()"))
			So(ch.Definitions.Sorted(), ShouldResemble, []string{"A"})
			So(ch.Derivations.Sorted(), ShouldResemble, []string{"y", "z"})
		})

		Convey("Removed statements are not changes", func() {
			ch := DetectChanges(prev, classify("let A = || 1\nlet x = A()"))
			So(ch.Empty(), ShouldBeTrue)
		})

		Convey("Changing kind under one name is a change", func() {
			ch := DetectChanges(prev, classify("let A = || 1\nlet B = || 2\nlet x = || 3\nlet y = B()"))
			So(ch.Definitions.Sorted(), ShouldResemble, []string{"x"})
			So(ch.Derivations, ShouldBeEmpty)
		})

		Convey("Editing a shadowed declaration changes its name", func() {
			prev := NewSnapshot(classify("let x = A()\nlet y = f(x)\nlet x = B()"))
			ch := DetectChanges(prev, classify("let x = A()\nlet y = f(x)\nlet x = B()"))
			So(ch.Empty(), ShouldBeTrue)
			ch = DetectChanges(prev, classify("let x = C()\nlet y = f(x)\nlet x = B()"))
			So(ch.Derivations.Sorted(), ShouldResemble, []string{"x"})
			ch = DetectChanges(prev, classify("let y = f(x)\nlet x = B()"))
			So(ch.Derivations.Sorted(), ShouldResemble, []string{"x"})
		})

		Convey("The snapshot keeps derivations in source order", func() {
			var targets []string
			for _, d := range prev.Derivations() {
				targets = append(targets, d.Target)
			}
			So(targets, ShouldResemble, []string{"x", "y"})
			So(prev.Empty(), ShouldBeFalse)
			So(Snapshot{}.Empty(), ShouldBeTrue)
		})
	})
}
