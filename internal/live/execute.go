package live

import (
	"github.com/inconshreveable/log15"

	"elf-lang/live/internal/parser"
)

// Environment is the persistent namespace statements are applied to. It is
// never reset between iterations.
type Environment interface {
	InstallUnit(name string, unit parser.FunctionLit, mutable bool) error
	Bind(name string, call parser.CallExpr, mutable bool) error
	Apply(st parser.Statement) error
}

// Recorder receives the normalized text of every statement applied.
type Recorder interface {
	Record(text string)
}

type discardRecorder struct{}

func (discardRecorder) Record(string) {}

// Failure is one statement that raised while being applied.
type Failure struct {
	Stmt *Statement
	Err  error
}

func (f Failure) Message() string {
	return Message(f.Err)
}

// Outcome is what one execution phase did.
type Outcome struct {
	Applied  []*Statement
	Failures []Failure
	// Leftover are dirty names no current Derivation produces. They are
	// dropped at the end of the iteration.
	Leftover []string
}

// Execute applies, in order, every Opaque statement, the dirty Definitions
// and then the dirty Derivations. A failing statement is reported and
// skipped; it never stops the ones after it.
//
// Names declared more than once are replayed where they stand: in the
// Derivation pass every shadowed declaration is applied at its source
// position and the winning one is applied again after it, so statements
// between two declarations see the binding a fresh run would give them.
func Execute(env Environment, s *Script, dirty Dirty, rec Recorder, log log15.Logger) Outcome {
	if rec == nil {
		rec = discardRecorder{}
	}
	var out Outcome
	apply := func(st *Statement, fn func() error) {
		out.Applied = append(out.Applied, st)
		rec.Record(st.Text)
		if err := fn(); err != nil {
			err = ApplyError.Wrap(err)
			out.Failures = append(out.Failures, Failure{Stmt: st, Err: err})
			log.Error("statement failed", "line", st.Line, "stmt", st.Text, "err", Message(err))
			return
		}
		log.Info("applied", "line", st.Line, "stmt", st.Text)
	}
	install := func(d *Definition) {
		apply(d.Stmt, func() error { return env.InstallUnit(d.Name, d.Unit, d.Mutable) })
	}
	bind := func(d *Derivation) {
		apply(d.Stmt, func() error { return env.Bind(d.Target, d.Call, d.Mutable) })
	}

	for _, st := range s.Opaque {
		st := st
		apply(st, func() error { return env.Apply(st.Node) })
	}
	for _, d := range s.DefinitionsInOrder() {
		if dirty.Definitions.Has(d.Name) && !s.Redeclared.Has(d.Name) {
			install(d)
		}
	}
	pending := dirty.Names.clone()
	for _, decl := range s.declarations {
		redeclared := s.Redeclared.Has(decl.name())
		switch {
		case decl.def != nil:
			if decl.shadowed || redeclared {
				install(decl.def)
			}
		case decl.shadowed:
			bind(decl.deriv)
		case pending.Has(decl.deriv.Target) || redeclared:
			delete(pending, decl.deriv.Target)
			bind(decl.deriv)
		}
	}
	out.Leftover = pending.Sorted()
	if len(out.Leftover) > 0 {
		log.Debug("dirty names without a derivation", "names", out.Leftover)
	}
	return out
}
