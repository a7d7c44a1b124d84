package evaluator

import (
	"fmt"
	"strings"
)

type builtinSpec struct {
	name  string
	arity int
	impl  func(ev *Evaluator, args []Value) (Value, error)
}

// builtinScope holds the builtins; user bindings live in a scope below it
// so they can shadow a builtin without replacing it.
func builtinScope() *Env {
	env := NewEnv(nil)
	for _, b := range builtinSpecs() {
		env.Define(b.name, newBuiltin(b.name, b.arity, b.impl), false)
	}
	return env
}

func builtinSpecs() []builtinSpec {
	return []builtinSpec{
		{"puts", 1, builtinPuts},
		{"first", 1, builtinFirst},
		{"rest", 1, builtinRest},
		{"size", 1, builtinSize},
		{"push", 2, builtinPush},
		{"assoc", 3, builtinAssoc},
		{"map", 2, builtinMap},
		{"filter", 2, builtinFilter},
		{"fold", 3, builtinFold},
		{"+", 2, func(ev *Evaluator, args []Value) (Value, error) { return add(args[0], args[1]) }},
		{"-", 2, func(ev *Evaluator, args []Value) (Value, error) { return sub(args[0], args[1]) }},
		{"*", 2, func(ev *Evaluator, args []Value) (Value, error) { return mul(args[0], args[1]) }},
		{"/", 2, func(ev *Evaluator, args []Value) (Value, error) { return div(args[0], args[1]) }},
	}
}

func builtinPuts(ev *Evaluator, args []Value) (Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Format(a) + " "
	}
	fmt.Fprintln(ev.out, strings.Join(parts, ""))
	return Nil{}, nil
}

func builtinFirst(ev *Evaluator, args []Value) (Value, error) {
	switch x := args[0].(type) {
	case List:
		if len(x.Items) > 0 {
			return x.Items[0], nil
		}
	case Str:
		if len(x.V) > 0 {
			return Str{V: x.V[:1]}, nil
		}
	}
	return Nil{}, nil
}

func builtinRest(ev *Evaluator, args []Value) (Value, error) {
	switch x := args[0].(type) {
	case List:
		if len(x.Items) == 0 {
			return List{Items: []Value{}}, nil
		}
		return List{Items: append([]Value{}, x.Items[1:]...)}, nil
	case Str:
		if len(x.V) == 0 {
			return Str{}, nil
		}
		return Str{V: x.V[1:]}, nil
	}
	return Nil{}, nil
}

func builtinSize(ev *Evaluator, args []Value) (Value, error) {
	var n int
	switch x := args[0].(type) {
	case List:
		n = len(x.Items)
	case Set:
		n = len(x.Items)
	case Dict:
		n = len(x.Items)
	case Str:
		n = len(x.V)
	}
	return Int{V: int64(n)}, nil
}

func builtinPush(ev *Evaluator, args []Value) (Value, error) {
	v := args[0]
	switch coll := args[1].(type) {
	case List:
		return List{Items: append(append([]Value{}, coll.Items...), v)}, nil
	case Set:
		if containsValue(coll.Items, v) {
			return coll, nil
		}
		return Set{Items: append(append([]Value{}, coll.Items...), v)}, nil
	}
	return nil, fmt.Errorf("Unsupported operation: %s push", TypeName(args[1]))
}

func builtinAssoc(ev *Evaluator, args []Value) (Value, error) {
	dict, ok := args[2].(Dict)
	if !ok {
		return nil, fmt.Errorf("assoc(...): invalid argument type, expected Dictionary, found %s", TypeName(args[2]))
	}
	if _, isDict := args[0].(Dict); isDict {
		return nil, fmt.Errorf("Unable to use a Dictionary as a Dictionary key")
	}
	return Dict{Items: putEntry(append([]dictEntry{}, dict.Items...), args[0], args[1])}, nil
}

func builtinMap(ev *Evaluator, args []Value) (Value, error) {
	fn, ok1 := args[0].(Function)
	list, ok2 := args[1].(List)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("Unexpected argument: map(%s, %s)", TypeName(args[0]), TypeName(args[1]))
	}
	out := make([]Value, 0, len(list.Items))
	for _, it := range list.Items {
		v, err := fn.call(ev, []Value{it})
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return List{Items: out}, nil
}

func builtinFilter(ev *Evaluator, args []Value) (Value, error) {
	fn, ok1 := args[0].(Function)
	list, ok2 := args[1].(List)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("Unexpected argument: filter(%s, %s)", TypeName(args[0]), TypeName(args[1]))
	}
	out := make([]Value, 0, len(list.Items))
	for _, it := range list.Items {
		v, err := fn.call(ev, []Value{it})
		if err != nil {
			return nil, err
		}
		if isTruthy(v) {
			out = append(out, it)
		}
	}
	return List{Items: out}, nil
}

func builtinFold(ev *Evaluator, args []Value) (Value, error) {
	fn, ok1 := args[1].(Function)
	list, ok2 := args[2].(List)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("Unexpected argument: fold(%s, %s, %s)", TypeName(args[0]), TypeName(args[1]), TypeName(args[2]))
	}
	acc := args[0]
	for _, it := range list.Items {
		v, err := fn.call(ev, []Value{acc, it})
		if err != nil {
			return nil, err
		}
		acc = v
	}
	return acc, nil
}

func containsValue(items []Value, v Value) bool {
	for _, it := range items {
		if equal(it, v) {
			return true
		}
	}
	return false
}

// putEntry replaces the value under key, or appends a new entry.
func putEntry(items []dictEntry, key, val Value) []dictEntry {
	for i := range items {
		if equal(items[i].Key, key) {
			items[i].Val = val
			return items
		}
	}
	return append(items, dictEntry{Key: key, Val: val})
}
