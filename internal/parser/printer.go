package parser

import (
	"strings"
)

const indentUnit = "    "

// Format renders st as canonical elf source. Parsing the result yields a
// statement that is structurally equal to st; comments are kept verbatim.
func Format(st Statement) string {
	var b strings.Builder
	writeStmt(&b, st, 0)
	return b.String()
}

// FormatExpr renders a single expression as canonical elf source.
func FormatExpr(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e, 0)
	return b.String()
}

func writeStmt(b *strings.Builder, st Statement, depth int) {
	switch s := st.(type) {
	case CommentStmt:
		b.WriteString(s.Value)
	case ExpressionStmt:
		writeExpr(b, s.Value, depth)
	}
}

// exprPrec is how tightly an expression binds when it appears as an operand.
func exprPrec(e Expr) int {
	switch ex := e.(type) {
	case InfixExpr:
		return precedence(ex.Operator)
	case FunctionThread:
		return precThread
	case FunctionComposition:
		return precCompose
	case PrefixExpr:
		return precMul
	case LetExpr, AssignExpr, FunctionLit, IfExpr:
		// these swallow everything to their right
		return precLowest
	}
	return precCallIndex
}

// writeOperand parenthesizes e when it binds looser than floor.
func writeOperand(b *strings.Builder, e Expr, floor, depth int) {
	if exprPrec(e) < floor {
		b.WriteByte('(')
		writeExpr(b, e, depth)
		b.WriteByte(')')
		return
	}
	writeExpr(b, e, depth)
}

func writeList(b *strings.Builder, items []Expr, depth int) {
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		writeExpr(b, it, depth)
	}
}

func writeExpr(b *strings.Builder, e Expr, depth int) {
	switch ex := e.(type) {
	case nil:
		b.WriteString("nil")
	case Identifier:
		b.WriteString(ex.Name)
	case IntegerLit:
		b.WriteString(ex.Value)
	case DecimalLit:
		b.WriteString(ex.Value)
	case StringLit:
		b.WriteString(quote(ex.Value))
	case BooleanLit:
		if ex.Value {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case NilLit:
		b.WriteString("nil")
	case LetExpr:
		b.WriteString("let ")
		if ex.Mutable() {
			b.WriteString("mut ")
		}
		b.WriteString(ex.Name.Name)
		b.WriteString(" = ")
		writeExpr(b, ex.Value, depth)
	case AssignExpr:
		b.WriteString(ex.Name.Name)
		b.WriteString(" = ")
		writeExpr(b, ex.Value, depth)
	case InfixExpr:
		prec := precedence(ex.Operator)
		if _, neg := ex.Left.(PrefixExpr); neg && prec >= precMul {
			// a prefix operand swallows a following * or /
			b.WriteByte('(')
			writeExpr(b, ex.Left, depth)
			b.WriteByte(')')
		} else {
			writeOperand(b, ex.Left, prec, depth)
		}
		b.WriteByte(' ')
		b.WriteString(ex.Operator)
		b.WriteByte(' ')
		// left associative: an equal-precedence right operand needs parens
		writeOperand(b, ex.Right, prec+1, depth)
	case PrefixExpr:
		b.WriteString(ex.Operator)
		writeOperand(b, ex.Operand, precMul, depth)
	case ListLit:
		b.WriteByte('[')
		writeList(b, ex.Items, depth)
		b.WriteByte(']')
	case SetLit:
		b.WriteByte('{')
		writeList(b, ex.Items, depth)
		b.WriteByte('}')
	case DictLit:
		b.WriteString("#{")
		for i, it := range ex.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, it.Key, depth)
			b.WriteString(": ")
			writeExpr(b, it.Value, depth)
		}
		b.WriteByte('}')
	case IndexExpr:
		writeOperand(b, ex.Left, precCallIndex, depth)
		b.WriteByte('[')
		writeExpr(b, ex.Index, depth)
		b.WriteByte(']')
	case IfExpr:
		b.WriteString("if ")
		writeOperand(b, ex.Condition, precCompare, depth)
		b.WriteByte(' ')
		writeBlock(b, ex.Consequence, depth)
		b.WriteString(" else ")
		writeBlock(b, ex.Alternative, depth)
	case FunctionLit:
		b.WriteByte('|')
		for i, p := range ex.Parameters {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Name)
		}
		b.WriteString("| ")
		writeBody(b, ex.Body, depth)
	case CallExpr:
		writeOperand(b, ex.Function, precCallIndex, depth)
		b.WriteByte('(')
		writeList(b, ex.Arguments, depth)
		b.WriteByte(')')
	case FunctionComposition:
		for i, f := range ex.Functions {
			if i > 0 {
				b.WriteString(" >> ")
			}
			// right associative and flattened: nested compositions need parens
			writeOperand(b, f, precCompose+1, depth)
		}
	case FunctionThread:
		writeOperand(b, ex.Initial, precThread, depth)
		for _, f := range ex.Functions {
			b.WriteString(" |> ")
			writeOperand(b, f, precThread+1, depth)
		}
	}
}

// writeBody prints a single-expression function body inline and anything
// else as a block.
func writeBody(b *strings.Builder, body Block, depth int) {
	if len(body.Statements) == 1 {
		if es, ok := body.Statements[0].(ExpressionStmt); ok && inlineable(es.Value) {
			writeExpr(b, es.Value, depth)
			return
		}
	}
	writeBlock(b, body, depth)
}

// Set literals and bindings always get a braced body; a bare set after the
// parameter list would read back as a block.
func inlineable(e Expr) bool {
	switch e.(type) {
	case SetLit, LetExpr, AssignExpr:
		return false
	}
	return true
}

func writeBlock(b *strings.Builder, blk Block, depth int) {
	if len(blk.Statements) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{\n")
	inner := strings.Repeat(indentUnit, depth+1)
	for i, st := range blk.Statements {
		b.WriteString(inner)
		writeStmt(b, st, depth+1)
		// newlines are not separators: `a` followed by `(b)` would be a call
		if _, expr := st.(ExpressionStmt); expr && i < len(blk.Statements)-1 {
			b.WriteByte(';')
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(indentUnit, depth))
	b.WriteByte('}')
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
