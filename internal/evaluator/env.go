package evaluator

import (
	"fmt"
	"sort"
)

type binding struct {
	val Value
	mut bool
}

// Env is one scope; lookups fall through to outer.
type Env struct {
	store map[string]binding
	outer *Env
}

func NewEnv(outer *Env) *Env { return &Env{store: map[string]binding{}, outer: outer} }

// Define binds name in this scope, replacing any earlier binding.
func (e *Env) Define(name string, v Value, mutable bool) {
	e.store[name] = binding{val: v, mut: mutable}
}

func (e *Env) Get(name string) (Value, error) {
	for cur := e; cur != nil; cur = cur.outer {
		if b, ok := cur.store[name]; ok {
			return b.val, nil
		}
	}
	return nil, fmt.Errorf("Identifier can not be found: %s", name)
}

func (e *Env) Assign(name string, v Value) error {
	for cur := e; cur != nil; cur = cur.outer {
		b, ok := cur.store[name]
		if !ok {
			continue
		}
		if !b.mut {
			return fmt.Errorf("Variable '%s' is not mutable", name)
		}
		cur.store[name] = binding{val: v, mut: true}
		return nil
	}
	return fmt.Errorf("Identifier can not be found: %s", name)
}

// Names lists the names bound directly in this scope, sorted.
func (e *Env) Names() []string {
	out := make([]string, 0, len(e.store))
	for k := range e.store {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
