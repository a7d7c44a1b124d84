package evaluator

import (
	"fmt"
	"strings"
)

// numeric splits a pair of numbers into int or float operands; ok is false
// unless both are numbers.
func numeric(a, b Value) (ai, bi int64, af, bf float64, isInt, ok bool) {
	switch x := a.(type) {
	case Int:
		switch y := b.(type) {
		case Int:
			return x.V, y.V, 0, 0, true, true
		case Dec:
			return 0, 0, float64(x.V), y.V, false, true
		}
	case Dec:
		switch y := b.(type) {
		case Int:
			return 0, 0, x.V, float64(y.V), false, true
		case Dec:
			return 0, 0, x.V, y.V, false, true
		}
	}
	return 0, 0, 0, 0, false, false
}

func unsupported(a Value, op string, b Value) error {
	return fmt.Errorf("Unsupported operation: %s %s %s", TypeName(a), op, TypeName(b))
}

func add(a, b Value) (Value, error) {
	if ai, bi, af, bf, isInt, ok := numeric(a, b); ok {
		if isInt {
			return Int{V: ai + bi}, nil
		}
		return Dec{V: af + bf}, nil
	}
	switch x := a.(type) {
	case Int:
		if y, ok := b.(Str); ok {
			return Str{V: x.repr() + y.V}, nil
		}
	case Dec:
		if y, ok := b.(Str); ok {
			return Str{V: formatDecimal(x.V) + y.V}, nil
		}
	case Str:
		if y, ok := b.(Str); ok {
			return Str{V: x.V + y.V}, nil
		}
		return Str{V: x.V + Format(b)}, nil
	case List:
		if y, ok := b.(List); ok {
			return List{Items: append(append([]Value{}, x.Items...), y.Items...)}, nil
		}
	case Set:
		if y, ok := b.(Set); ok {
			out := make([]Value, 0, len(x.Items)+len(y.Items))
			for _, it := range append(append([]Value{}, x.Items...), y.Items...) {
				if !containsValue(out, it) {
					out = append(out, it)
				}
			}
			return Set{Items: out}, nil
		}
	case Dict:
		// right-biased merge
		if y, ok := b.(Dict); ok {
			out := append([]dictEntry{}, x.Items...)
			for _, e := range y.Items {
				out = putEntry(out, e.Key, e.Val)
			}
			return Dict{Items: out}, nil
		}
	}
	return nil, unsupported(a, "+", b)
}

func sub(a, b Value) (Value, error) {
	if ai, bi, af, bf, isInt, ok := numeric(a, b); ok {
		if isInt {
			return Int{V: ai - bi}, nil
		}
		return Dec{V: af - bf}, nil
	}
	return nil, unsupported(a, "-", b)
}

func mul(a, b Value) (Value, error) {
	if s, ok := a.(Str); ok {
		switch y := b.(type) {
		case Int:
			if y.V < 0 {
				return nil, fmt.Errorf("Unsupported operation: String * Integer (< 0)")
			}
			return Str{V: strings.Repeat(s.V, int(y.V))}, nil
		case Dec:
			return nil, fmt.Errorf("Unsupported operation: String * Decimal")
		}
	}
	if s, ok := b.(Str); ok {
		return mul(s, a)
	}
	if ai, bi, af, bf, isInt, ok := numeric(a, b); ok {
		if isInt {
			return Int{V: ai * bi}, nil
		}
		return Dec{V: af * bf}, nil
	}
	return nil, unsupported(a, "*", b)
}

func div(a, b Value) (Value, error) {
	ai, bi, af, bf, isInt, ok := numeric(a, b)
	if !ok {
		return nil, unsupported(a, "/", b)
	}
	if isInt {
		if bi == 0 {
			return nil, fmt.Errorf("Division by zero")
		}
		// truncates toward zero
		return Int{V: ai / bi}, nil
	}
	if bf == 0 {
		return nil, fmt.Errorf("Division by zero")
	}
	return Dec{V: af / bf}, nil
}

func equal(a, b Value) bool { return compare(a, b) == 0 }

func cmp[T int64 | float64 | string](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// compare is a total order: values of different, incomparable types order
// by type name.
func compare(a, b Value) int {
	if ai, bi, af, bf, isInt, ok := numeric(a, b); ok {
		if isInt {
			return cmp(ai, bi)
		}
		return cmp(af, bf)
	}
	switch x := a.(type) {
	case Str:
		if y, ok := b.(Str); ok {
			return cmp(x.V, y.V)
		}
	case Bool:
		if y, ok := b.(Bool); ok {
			return cmp(boolRank(x.V), boolRank(y.V))
		}
	case Nil:
		if _, ok := b.(Nil); ok {
			return 0
		}
	case List:
		if y, ok := b.(List); ok {
			return compareSeq(x.Items, y.Items)
		}
	case Set:
		if y, ok := b.(Set); ok {
			return compareSeq(sortedValues(x.Items), sortedValues(y.Items))
		}
	case Dict:
		if y, ok := b.(Dict); ok {
			xs, ys := sortedEntries(x.Items), sortedEntries(y.Items)
			for i := 0; i < len(xs) && i < len(ys); i++ {
				if c := compare(xs[i].Key, ys[i].Key); c != 0 {
					return c
				}
				if c := compare(xs[i].Val, ys[i].Val); c != 0 {
					return c
				}
			}
			return cmp(int64(len(xs)), int64(len(ys)))
		}
	}
	return cmp(TypeName(a), TypeName(b))
}

func boolRank(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func compareSeq(xs, ys []Value) int {
	for i := 0; i < len(xs) && i < len(ys); i++ {
		if c := compare(xs[i], ys[i]); c != 0 {
			return c
		}
	}
	return cmp(int64(len(xs)), int64(len(ys)))
}
