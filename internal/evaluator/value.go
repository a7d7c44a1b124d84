package evaluator

import (
	"fmt"
	"sort"
	"strings"
)

// Value is anything an elf expression can produce.
type Value interface{ repr() string }

type (
	Int struct{ V int64 }
	Dec struct {
		V   float64
		Lit string
	}
	Str  struct{ V string }
	Bool struct{ V bool }
	Nil  struct{}
	List struct{ Items []Value }
	Set  struct{ Items []Value }
	Dict struct{ Items []dictEntry }
)

// dictEntry keeps insertion order and allows any Value as key.
type dictEntry struct {
	Key Value
	Val Value
}

func (v Int) repr() string { return fmt.Sprintf("%d", v.V) }
func (v Dec) repr() string {
	if v.Lit != "" {
		return v.Lit
	}
	return formatDecimal(v.V)
}
func (v Str) repr() string { return `"` + escapeForPrint(v.V) + `"` }
func (v Bool) repr() string {
	if v.V {
		return "true"
	}
	return "false"
}
func (v Nil) repr() string  { return "nil" }
func (v List) repr() string { return "[" + joinValues(v.Items) + "]" }
func (v Set) repr() string  { return "{" + joinValues(sortedValues(v.Items)) + "}" }
func (v Dict) repr() string {
	items := sortedEntries(v.Items)
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = Format(it.Key) + ": " + Format(it.Val)
	}
	return "#{" + strings.Join(parts, ", ") + "}"
}

// Format produces the canonical printed representation for a value.
func Format(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.repr()
}

func joinValues(items []Value) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = Format(it)
	}
	return strings.Join(parts, ", ")
}

func sortedValues(items []Value) []Value {
	out := append([]Value(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return compare(out[i], out[j]) < 0 })
	return out
}

func sortedEntries(items []dictEntry) []dictEntry {
	out := append([]dictEntry(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return compare(out[i].Key, out[j].Key) < 0 })
	return out
}

// formatDecimal prints at most 15 decimals with trailing zeros trimmed.
func formatDecimal(f float64) string {
	s := fmt.Sprintf("%.15f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// escapeForPrint leaves double quotes alone.
func escapeForPrint(s string) string {
	return strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\t", `\t`).Replace(s)
}

func normalizeDecLiteral(s string) string {
	s = strings.ReplaceAll(s, "_", "")
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

func isTruthy(v Value) bool {
	switch x := v.(type) {
	case Int:
		return x.V != 0
	case Dec:
		return x.V != 0
	case Str:
		return x.V != ""
	case Bool:
		return x.V
	case Nil:
		return false
	case List:
		return len(x.Items) > 0
	case Set:
		return len(x.Items) > 0
	case Dict:
		return len(x.Items) > 0
	}
	return true
}

// TypeName is the language-level name of v's type.
func TypeName(v Value) string {
	switch v.(type) {
	case Int:
		return "Integer"
	case Dec:
		return "Decimal"
	case Str:
		return "String"
	case Bool:
		return "Boolean"
	case Nil:
		return "Nil"
	case List:
		return "List"
	case Set:
		return "Set"
	case Dict:
		return "Dictionary"
	case Function:
		return "Function"
	}
	return "Unknown"
}
