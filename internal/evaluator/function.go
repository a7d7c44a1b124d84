package evaluator

import (
	"elf-lang/live/internal/parser"
)

// Function values are callable with fewer arguments than they take; the
// result is then a partially applied function.
type Function interface {
	Value
	call(ev *Evaluator, args []Value) (Value, error)
}

type builtin struct {
	name  string
	arity int
	impl  func(ev *Evaluator, args []Value) (Value, error)
	pre   []Value
}

func newBuiltin(name string, arity int, impl func(ev *Evaluator, args []Value) (Value, error)) Function {
	return &builtin{name: name, arity: arity, impl: impl}
}

func (b *builtin) repr() string { return "|...| { [builtin] }" }

func (b *builtin) call(ev *Evaluator, args []Value) (Value, error) {
	all := append(append([]Value{}, b.pre...), args...)
	if len(all) < b.arity {
		return &builtin{name: b.name, arity: b.arity, impl: b.impl, pre: all}, nil
	}
	return b.impl(ev, all)
}

// userFunc closes over the scope it was created in.
type userFunc struct {
	params []string
	body   parser.Block
	env    *Env
}

func (f *userFunc) repr() string { return "|...| { [function] }" }

func (f *userFunc) call(ev *Evaluator, args []Value) (Value, error) {
	callEnv := NewEnv(f.env)
	if len(args) < len(f.params) {
		for i, name := range f.params[:len(args)] {
			callEnv.Define(name, args[i], false)
		}
		return &userFunc{params: f.params[len(args):], body: f.body, env: callEnv}, nil
	}
	for i, name := range f.params {
		callEnv.Define(name, args[i], false)
	}
	saved := ev.env
	ev.env = callEnv
	defer func() { ev.env = saved }()
	return ev.evalBlock(f.body)
}

// composedFunc applies functions left to right, feeding each result forward.
type composedFunc struct {
	functions []Function
}

func (c *composedFunc) repr() string { return "|...| { [composed] }" }

func (c *composedFunc) call(ev *Evaluator, args []Value) (Value, error) {
	if len(c.functions) == 0 {
		return Nil{}, nil
	}
	cur, err := c.functions[0].call(ev, args)
	if err != nil {
		return nil, err
	}
	for _, f := range c.functions[1:] {
		if cur, err = f.call(ev, []Value{cur}); err != nil {
			return nil, err
		}
	}
	return cur, nil
}
