package parser

import (
	"fmt"
	"strings"

	"elf-lang/live/internal/lexer"
)

type Parser struct {
	toks []lexer.Token
	i    int
}

func New(toks []lexer.Token) *Parser { return &Parser{toks: toks} }

// Parse lexes and parses src in one go.
func Parse(src string) (Program, error) {
	return ParseTokens(lexer.Lex(src))
}

// ParseTokens parses a whole program. Any syntax error aborts the parse;
// no partial program is returned alongside it.
func ParseTokens(toks []lexer.Token) (prog Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(failure)
			if !ok {
				panic(r)
			}
			prog = Program{}
			err = SyntaxError.Wrap(fmt.Errorf("line %d: %s", f.line, f.msg))
		}
	}()
	return New(toks).ParseProgram(), nil
}

func (p *Parser) cur() lexer.Token {
	if p.i >= len(p.toks) {
		line := 1
		if n := len(p.toks); n > 0 {
			line = p.toks[n-1].Line
		}
		return lexer.Token{Type: lexer.EOF, Line: line}
	}
	return p.toks[p.i]
}

func (p *Parser) next() lexer.Token {
	t := p.cur()
	if p.i < len(p.toks) {
		p.i++
	}
	return t
}

func (p *Parser) match(typ string) bool {
	if p.cur().Type == typ {
		p.i++
		return true
	}
	return false
}

func (p *Parser) fail(t lexer.Token, format string, args ...interface{}) {
	panic(failure{line: t.Line, msg: fmt.Sprintf(format, args...)})
}

func (p *Parser) expect(typ string) lexer.Token {
	t := p.cur()
	if t.Type != typ {
		p.fail(t, "expected %s, found %s", typ, describe(t))
	}
	p.i++
	return t
}

func describe(t lexer.Token) string {
	switch t.Type {
	case lexer.EOF:
		return "end of input"
	case lexer.ILLEGAL:
		return fmt.Sprintf("illegal token %q", t.Lit)
	}
	if t.Lit != "" && t.Lit != t.Type {
		return fmt.Sprintf("%s %q", t.Type, t.Lit)
	}
	return t.Type
}

// Precedence values (higher binds tighter)
const (
	precLowest = iota
	precOr
	precAnd
	precCompare
	precThread  // |>
	precCompose // >> (higher than thread, right-assoc)
	precAdd
	precMul
	precCallIndex // calls and indexing
)

func precedence(op string) int {
	switch op {
	case "||":
		return precOr
	case "&&":
		return precAnd
	case "==", "!=", ">", "<", ">=", "<=":
		return precCompare
	case "|>":
		return precThread
	case ">>":
		return precCompose
	case "+", "-":
		return precAdd
	case "*", "/":
		return precMul
	default:
		return precLowest
	}
}

func isInfix(op string) bool {
	switch op {
	case "+", "-", "*", "/", ">", "<", ">=", "<=", "==", "!=", "&&", "||", ">>", "|>":
		return true
	}
	return false
}

// ParseProgram panics with a failure on syntax errors; use ParseTokens
// unless the caller recovers itself.
func (p *Parser) ParseProgram() Program {
	stmts := p.parseStatements(lexer.EOF)
	return Program{Statements: stmts, Type: "Program"}
}

func (p *Parser) parseStatements(end string) []Statement {
	var stmts []Statement
	for p.cur().Type != end && p.cur().Type != lexer.EOF {
		t := p.cur()
		if t.Type == lexer.CMT {
			p.next()
			stmts = append(stmts, CommentStmt{Type: "Comment", Value: t.Lit, Line: t.Line})
			p.match(";")
			continue
		}

		expr := p.parseExpression(precLowest)
		stmts = append(stmts, ExpressionStmt{Type: "Expression", Value: expr, Line: t.Line})
		// Statements are separated by ';' or simply by starting a new one.
		p.match(";")
	}
	return stmts
}

func (p *Parser) parseExpression(minPrec int) Expr {
	left := p.parsePrefix()

	for {
		t := p.cur()
		// Assignment: only when left is Identifier and next token '='
		if t.Type == "=" {
			if id, ok := left.(Identifier); ok {
				p.next()
				right := p.parseExpression(precLowest)
				left = AssignExpr{Name: id, Type: "Assignment", Value: right}
				continue
			}
			p.fail(t, "cannot assign to %s", FormatExpr(left))
		}
		if t.Type == "(" {
			p.next()
			var args []Expr
			if !p.match(")") {
				for {
					args = append(args, p.parseExpression(precLowest))
					if p.match(")") {
						break
					}
					p.expect(",")
				}
			}
			left = CallExpr{Arguments: args, Function: left, Type: "Call"}
			continue
		}
		if t.Type == "[" {
			p.next()
			idx := p.parseExpression(precLowest)
			p.expect("]")
			left = IndexExpr{Index: idx, Left: left, Type: "Index"}
			continue
		}

		op := t.Type
		if !isInfix(op) {
			break
		}

		pPrec := precedence(op)
		rightAssoc := op == ">>"
		if pPrec < minPrec {
			break
		}
		p.next()
		nextMin := pPrec + 1
		if rightAssoc {
			nextMin = pPrec
		}
		right := p.parseExpression(nextMin)

		if op == ">>" {
			var funcs []Expr
			if fc, ok := left.(FunctionComposition); ok {
				funcs = append(funcs, fc.Functions...)
			} else {
				funcs = append(funcs, left)
			}
			if fc, ok := right.(FunctionComposition); ok {
				funcs = append(funcs, fc.Functions...)
			} else {
				funcs = append(funcs, right)
			}
			left = FunctionComposition{Functions: funcs, Type: "FunctionComposition"}
			continue
		}
		if op == "|>" {
			var init Expr
			var funcs []Expr
			if ft, ok := left.(FunctionThread); ok {
				init = ft.Initial
				funcs = append(funcs, ft.Functions...)
			} else {
				init = left
			}
			funcs = append(funcs, right)
			left = FunctionThread{Functions: funcs, Initial: init, Type: "FunctionThread"}
			continue
		}

		left = InfixExpr{Left: left, Operator: op, Right: right, Type: "Infix"}
	}

	return left
}

func (p *Parser) parseList(end string) []Expr {
	items := make([]Expr, 0)
	if p.match(end) {
		return items
	}
	for {
		items = append(items, p.parseExpression(precLowest))
		if p.match(end) {
			return items
		}
		p.expect(",")
	}
}

func (p *Parser) parsePrefix() Expr {
	t := p.next()
	switch t.Type {
	case "+", "*", "/":
		// operator used as a function value, e.g. fold(0, +, xs)
		return Identifier{Name: t.Lit, Type: "Identifier"}
	case "-":
		if nt := p.cur().Type; nt == "," || nt == ")" {
			return Identifier{Name: t.Lit, Type: "Identifier"}
		}
		operand := p.parseExpression(precMul)
		return PrefixExpr{Operator: "-", Operand: operand, Type: "Prefix"}
	case lexer.INT:
		return IntegerLit{Type: "Integer", Value: t.Lit}
	case lexer.DEC:
		return DecimalLit{Type: "Decimal", Value: t.Lit}
	case lexer.STR:
		return StringLit{Type: "String", Value: unquote(t.Lit)}
	case "TRUE":
		return BooleanLit{Type: "Boolean", Value: true}
	case "FALSE":
		return BooleanLit{Type: "Boolean", Value: false}
	case "NIL":
		return NilLit{Type: "Nil"}
	case lexer.ID:
		return Identifier{Name: t.Lit, Type: "Identifier"}
	case "[":
		return ListLit{Items: p.parseList("]"), Type: "List"}
	case "{":
		return SetLit{Items: p.parseList("}"), Type: "Set"}
	case "#{":
		items := make([]DictEntry, 0)
		if !p.match("}") {
			for {
				key := p.parseExpression(precLowest)
				p.expect(":")
				val := p.parseExpression(precLowest)
				items = append(items, DictEntry{Key: key, Value: val})
				if p.match("}") {
					break
				}
				p.expect(",")
			}
		}
		return DictLit{Items: items, Type: "Dictionary"}
	case "(":
		expr := p.parseExpression(precLowest)
		p.expect(")")
		return expr
	case "|", "||":
		// Function literal: |params| body; "||" is the empty parameter list.
		params := make([]Identifier, 0)
		if t.Type == "|" && !p.match("|") {
			for {
				idTok := p.expect(lexer.ID)
				params = append(params, Identifier{Name: idTok.Lit, Type: "Identifier"})
				if p.match("|") {
					break
				}
				p.expect(",")
			}
		}
		var body Block
		if p.cur().Type == "{" {
			body = p.parseBlock()
		} else {
			line := p.cur().Line
			expr := p.parseExpression(precLowest)
			body = Block{Statements: []Statement{ExpressionStmt{Type: "Expression", Value: expr, Line: line}}, Type: "Block"}
		}
		return FunctionLit{Body: body, Parameters: params, Type: "Function"}
	case "LET":
		mut := p.match("MUT")
		nameTok := p.expect(lexer.ID)
		p.expect("=")
		val := p.parseExpression(precLowest)
		typ := "Let"
		if mut {
			typ = "MutableLet"
		}
		return LetExpr{Name: Identifier{Name: nameTok.Lit, Type: "Identifier"}, Type: typ, Value: val}
	case "IF":
		cond := p.parseExpression(precCompare)
		cons := p.parseBlock()
		p.expect("ELSE")
		alt := p.parseBlock()
		return IfExpr{Alternative: alt, Condition: cond, Consequence: cons, Type: "If"}
	}
	p.fail(t, "unexpected %s", describe(t))
	return nil
}

func (p *Parser) parseBlock() Block {
	p.expect("{")
	stmts := p.parseStatements("}")
	p.expect("}")
	return Block{Statements: stmts, Type: "Block"}
}

// unquote removes surrounding quotes from a STR token and unescapes sequences.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				// unknown escapes keep the character, drop the backslash
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
