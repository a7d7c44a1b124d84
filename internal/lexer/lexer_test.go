package lexer

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func types(toks []Token) []string {
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Type)
	}
	return out
}

func TestLex(t *testing.T) {
	Convey("Lexing elf source", t, func() {
		Convey("Keywords, identifiers and operators come out in order", func() {
			toks := Lex("let mut x = f(1, 2.5) |> g")
			So(types(toks), ShouldResemble, []string{
				"LET", "MUT", ID, "=", ID, "(", INT, ",", DEC, ")", "|>", ID,
			})
			So(toks[4].Lit, ShouldEqual, "f")
			So(toks[8].Lit, ShouldEqual, "2.5")
		})

		Convey("Line numbers follow newlines, including inside strings", func() {
			toks := Lex("let a = 1\n\"two\nlines\"\nb // note")
			So(toks[0].Line, ShouldEqual, 1)
			So(toks[4].Type, ShouldEqual, STR)
			So(toks[4].Line, ShouldEqual, 2)
			So(toks[5].Lit, ShouldEqual, "b")
			So(toks[5].Line, ShouldEqual, 4)
			So(toks[6].Type, ShouldEqual, CMT)
			So(toks[6].Lit, ShouldEqual, "// note")
		})

		Convey("Unknown characters are ILLEGAL rather than skipped", func() {
			toks := Lex("let a = 1 @ 2")
			So(types(toks), ShouldContain, ILLEGAL)
			So(toks[4].Lit, ShouldEqual, "@")
		})

		Convey("An unterminated string is ILLEGAL", func() {
			toks := Lex(`puts("oops)`)
			last := toks[len(toks)-1]
			So(last.Type, ShouldEqual, ILLEGAL)
			So(last.Lit, ShouldEqual, `"oops)`)
		})

		Convey("Non-ASCII letters form identifiers", func() {
			toks := Lex("let größe = 3")
			So(toks[1].Type, ShouldEqual, ID)
			So(toks[1].Lit, ShouldEqual, "größe")
		})
	})
}
