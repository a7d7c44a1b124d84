package evaluator

import (
	"fmt"
	"io"

	"elf-lang/live/internal/parser"
)

// Evaluator runs elf code against one persistent global scope. The scope
// is never reset: every statement applied to it, from any entry point,
// accumulates there.
type Evaluator struct {
	out    io.Writer
	global *Env
	env    *Env
}

func New(w io.Writer) *Evaluator {
	global := NewEnv(builtinScope())
	return &Evaluator{out: w, global: global, env: global}
}

// Eval runs a whole program and returns the value of its last
// non-comment statement.
func (ev *Evaluator) Eval(prog parser.Program) (Value, error) {
	var last Value = Nil{}
	err := ev.guard(func() error {
		for _, st := range prog.Statements {
			if _, ok := st.(parser.ExpressionStmt); !ok {
				continue
			}
			v, err := ev.evalStmt(st)
			if err != nil {
				return err
			}
			last = v
		}
		return nil
	})
	return last, err
}

// InstallUnit (re)declares a function under name in the global scope.
func (ev *Evaluator) InstallUnit(name string, fn parser.FunctionLit, mutable bool) error {
	return ev.guard(func() error {
		ev.global.Define(name, ev.closure(fn), mutable)
		return nil
	})
}

// Bind evaluates call and binds its result to name in the global scope.
// On failure any previous binding of name is left as it was.
func (ev *Evaluator) Bind(name string, call parser.CallExpr, mutable bool) error {
	return ev.guard(func() error {
		v, err := ev.evalExpr(call)
		if err != nil {
			return err
		}
		ev.global.Define(name, v, mutable)
		return nil
	})
}

// Apply evaluates one top-level statement for its effect.
func (ev *Evaluator) Apply(st parser.Statement) error {
	return ev.guard(func() error {
		_, err := ev.evalStmt(st)
		return err
	})
}

// EvalSource parses src and evaluates it statement by statement, returning
// the last value. Bindings it makes persist like any other.
func (ev *Evaluator) EvalSource(src string) (Value, error) {
	prog, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	return ev.Eval(prog)
}

// Lookup finds name as a script would see it, builtins included.
func (ev *Evaluator) Lookup(name string) (Value, bool) {
	v, err := ev.global.Get(name)
	if err != nil {
		return nil, false
	}
	return v, true
}

// Names lists the names the script itself has bound, sorted.
func (ev *Evaluator) Names() []string { return ev.global.Names() }

// guard runs fn at global scope, classifying its error and converting any
// panic into an InternalError. The current scope is restored either way.
func (ev *Evaluator) guard(fn func() error) (err error) {
	ev.env = ev.global
	defer func() {
		ev.env = ev.global
		if r := recover(); r != nil {
			err = InternalError.Wrap(fmt.Errorf("%v", r))
		}
	}()
	if err = fn(); err != nil {
		err = Error.Wrap(err)
	}
	return err
}
