package shell

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/inconshreveable/log15"
	. "github.com/smartystreets/goconvey/convey"

	"elf-lang/live/internal/evaluator"
	"elf-lang/live/internal/live"
)

// scripted answers prompts from a fixed list, then reports end of input.
type scripted struct {
	lines   []string
	prompts []string
	history []string
}

func (p *scripted) Prompt(prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.lines) == 0 {
		return "", io.EOF
	}
	line := p.lines[0]
	p.lines = p.lines[1:]
	if line == "^C" {
		return "", ErrAborted
	}
	return line, nil
}

func (p *scripted) AppendHistory(line string) {
	p.history = append(p.history, line)
}

func TestShell(t *testing.T) {
	Convey("Given a shell over a session", t, func() {
		var out bytes.Buffer
		ev := evaluator.New(&out)
		log := log15.New()
		log.SetHandler(log15.DiscardHandler())
		sess := live.NewSession(ev, live.WithLogger(log))
		report, err := sess.Step("let A = || 1\nlet f = |v| v + 1\nlet x = A()\nlet y = f(x)\nmissing()")
		So(err, ShouldBeNil)

		in := &scripted{}
		sh := New(in, &out, ev, log)
		out.Reset()

		Convey("An empty line or continue resumes", func() {
			in.lines = []string{""}
			So(sh.Prompt(report), ShouldEqual, Resume)
			in.lines = []string{"  continue "}
			So(sh.Prompt(report), ShouldEqual, Resume)
			So(in.prompts, ShouldResemble, []string{"elf> ", "elf> "})
		})

		Convey("End of input and quit end the session", func() {
			So(sh.Prompt(report), ShouldEqual, Quit)
			in.lines = []string{"quit"}
			So(sh.Prompt(report), ShouldEqual, Quit)
		})

		Convey("Other input is evaluated and the prompt comes back", func() {
			in.lines = []string{"y * 10", "nope(1)", "^C", ""}
			So(sh.Prompt(report), ShouldEqual, Resume)
			So(out.String(), ShouldEqual, "20\nerror: Identifier can not be found: nope\n")
			So(in.history, ShouldResemble, []string{"y * 10", "nope(1)"})
			So(in.prompts, ShouldHaveLength, 3)
		})

		Convey("Operator input persists in the environment", func() {
			in.lines = []string{"let z = x + y", ""}
			So(sh.Prompt(report), ShouldEqual, Resume)
			v, ok := ev.Lookup("z")
			So(ok, ShouldBeTrue)
			So(evaluator.Format(v), ShouldEqual, "3")
		})

		Convey("The debug context shows the last iteration", func() {
			in.lines = []string{"debug", "dirty", "changes", "graph", "env", "x", "exit", ""}
			So(sh.Prompt(report), ShouldEqual, Resume)
			So(in.prompts, ShouldResemble, []string{
				"elf> ", "(debug) ", "(debug) ", "(debug) ", "(debug) ", "(debug) ", "(debug) ", "elf> ",
			})
			text := out.String()
			So(text, ShouldContainSubstring, "definitions: A, f\nnames: x, y\n")
			So(text, ShouldContainSubstring, "derivations: x, y\n")
			So(text, ShouldContainSubstring, "x -> y (input of)\n")
			So(text, ShouldContainSubstring, "A = |...| { [function] }\n")
			So(text, ShouldContainSubstring, "y = 2\n")
			So(text, ShouldEndWith, "\n1\n")
		})

		Convey("End of input inside debug ends the session", func() {
			in.lines = []string{"debug", "help"}
			So(sh.Prompt(report), ShouldEqual, Quit)
			So(out.String(), ShouldContainSubstring, "leave the debugger")
		})

		Convey("Summaries list failures by line", func() {
			sh.Summarize(report)
			So(out.String(), ShouldEqual, "iteration 1: 5 applied, 1 failed\n  line 5: Identifier can not be found: missing\n")
		})

		Convey("Acknowledging a parse failure waits for the operator", func() {
			_, perr := sess.Step("let a = (")
			in.lines = []string{""}
			So(sh.Acknowledge(perr), ShouldEqual, Resume)
			So(out.String(), ShouldStartWith, "error: line 1: unexpected end of input")
			So(in.prompts, ShouldResemble, []string{"press enter to retry "})
			So(sh.Acknowledge(fmt.Errorf("boom")), ShouldEqual, Quit)
		})
	})
}
