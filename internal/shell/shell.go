/*
	The operator's side of a live session.

	Between iterations the shell holds the loop at a prompt. An empty line
	or "continue" resumes, "debug" opens a nested context for inspecting
	the last iteration, and anything else is evaluated against the live
	environment with the result printed.
*/
package shell

import (
	"fmt"
	"io"
	"strings"

	"github.com/inconshreveable/log15"

	"elf-lang/live/internal/evaluator"
	"elf-lang/live/internal/live"
)

type Action int

const (
	Resume Action = iota
	Quit
)

func (a Action) String() string {
	if a == Quit {
		return "quit"
	}
	return "resume"
}

// Environment is what the shell evaluates operator input against.
type Environment interface {
	EvalSource(src string) (evaluator.Value, error)
	Lookup(name string) (evaluator.Value, bool)
	Names() []string
}

const (
	mainPrompt  = "elf> "
	debugPrompt = "(debug) "
)

type Shell struct {
	in  Prompter
	out io.Writer
	env Environment
	log log15.Logger
}

func New(in Prompter, out io.Writer, env Environment, log log15.Logger) *Shell {
	return &Shell{in: in, out: out, env: env, log: log}
}

// Summarize prints what an iteration did.
func (s *Shell) Summarize(r *live.Report) {
	fmt.Fprintf(s.out, "iteration %d: %d applied, %d failed\n", r.Iteration, len(r.Applied), len(r.Failures))
	for _, f := range r.Failures {
		fmt.Fprintf(s.out, "  line %d: %s\n", f.Stmt.Line, f.Message())
	}
}

// Prompt blocks until the operator resumes the loop or ends input.
func (s *Shell) Prompt(r *live.Report) Action {
	for {
		line, ok := s.read(mainPrompt)
		if !ok {
			return Quit
		}
		switch cmd := strings.TrimSpace(line); cmd {
		case "", "continue":
			return Resume
		case "quit":
			return Quit
		case "debug":
			if s.debug(r) == Quit {
				return Quit
			}
		default:
			s.in.AppendHistory(line)
			s.eval(cmd)
		}
	}
}

// Acknowledge reports a failure that stops the loop and waits for the
// operator before the same source is tried again.
func (s *Shell) Acknowledge(err error) Action {
	fmt.Fprintf(s.out, "error: %s\n", live.Message(err))
	if _, ok := s.read("press enter to retry "); !ok {
		return Quit
	}
	return Resume
}

// read returns false once input has ended. An aborted line reads as empty.
func (s *Shell) read(prompt string) (string, bool) {
	line, err := s.in.Prompt(prompt)
	switch {
	case err == nil:
		return line, true
	case err == ErrAborted:
		return "", true
	case err == io.EOF:
		return "", false
	}
	s.log.Error("reading input failed", "err", err)
	return "", false
}

func (s *Shell) eval(src string) {
	v, err := s.env.EvalSource(src)
	if err != nil {
		fmt.Fprintf(s.out, "error: %s\n", live.Message(err))
		return
	}
	fmt.Fprintln(s.out, evaluator.Format(v))
}

const debugHelp = `dirty     names re-applied in the last iteration
changes   statements that changed since the iteration before
graph     dependency edges of the last iteration
env       every binding in the environment
exit      leave the debugger
anything else is evaluated`

func (s *Shell) debug(r *live.Report) Action {
	for {
		line, ok := s.read(debugPrompt)
		if !ok {
			return Quit
		}
		switch cmd := strings.TrimSpace(line); cmd {
		case "", "exit", "continue":
			return Resume
		case "help":
			fmt.Fprintln(s.out, debugHelp)
		case "dirty":
			if r == nil {
				break
			}
			fmt.Fprintf(s.out, "definitions: %s\n", names(r.Dirty.Definitions))
			fmt.Fprintf(s.out, "names: %s\n", names(r.Dirty.Names))
			if len(r.Leftover) > 0 {
				fmt.Fprintf(s.out, "dropped: %s\n", strings.Join(r.Leftover, ", "))
			}
		case "changes":
			if r == nil {
				break
			}
			fmt.Fprintf(s.out, "definitions: %s\n", names(r.Changes.Definitions))
			fmt.Fprintf(s.out, "derivations: %s\n", names(r.Changes.Derivations))
		case "graph":
			if r == nil {
				break
			}
			for _, e := range r.Graph.Edges() {
				fmt.Fprintln(s.out, e)
			}
		case "env":
			for _, n := range s.env.Names() {
				v, _ := s.env.Lookup(n)
				fmt.Fprintf(s.out, "%s = %s\n", n, evaluator.Format(v))
			}
		default:
			s.in.AppendHistory(line)
			s.eval(cmd)
		}
	}
}

func names(set live.NameSet) string {
	if len(set) == 0 {
		return "-"
	}
	return strings.Join(set.Sorted(), ", ")
}
