package lexer

import (
	"unicode"
	"unicode/utf8"
)

// Token types that are not spelled like their literal.
const (
	EOF     = "EOF"
	ILLEGAL = "ILLEGAL"
	CMT     = "CMT"
	STR     = "STR"
	INT     = "INT"
	DEC     = "DEC"
	ID      = "ID"
)

type Token struct {
	Type string
	Lit  string
	Line int
}

var keywords = map[string]string{
	"let":   "LET",
	"mut":   "MUT",
	"if":    "IF",
	"else":  "ELSE",
	"true":  "TRUE",
	"false": "FALSE",
	"nil":   "NIL",
}

// Lex converts source into a flat token stream. Positions are kept as line
// numbers only. Characters the language does not know, and strings missing
// their closing quote, come out as ILLEGAL tokens so the parser can refuse
// the whole program.
func Lex(src string) []Token {
	var out []Token
	i := 0
	n := len(src)
	line := 1

	peek := func(off int) byte {
		j := i + off
		if j >= n || j < 0 {
			return 0
		}
		return src[j]
	}

	emit := func(typ, lit string, at int) { out = append(out, Token{Type: typ, Lit: lit, Line: at}) }

	for i < n {
		ch := src[i]

		if ch == '\n' {
			line++
			i++
			continue
		}
		if ch == ' ' || ch == '\t' || ch == '\r' {
			i++
			continue
		}

		// Line comment: // ... to end of line (without newline)
		if ch == '/' && peek(1) == '/' {
			start := i
			i += 2
			for i < n && src[i] != '\n' {
				i++
			}
			emit(CMT, src[start:i], line)
			continue
		}

		// Strings keep their raw slice including quotes; may span lines.
		if ch == '"' {
			start, startLine := i, line
			closed := false
			i++
			for i < n {
				c := src[i]
				if c == '\\' {
					if i+1 < n && src[i+1] == '\n' {
						line++
					}
					i += 2
					continue
				}
				if c == '\n' {
					line++
				}
				if c == '"' {
					i++
					closed = true
					break
				}
				i++
			}
			if i > n {
				i = n
			}
			if !closed {
				emit(ILLEGAL, src[start:i], startLine)
				continue
			}
			emit(STR, src[start:i], startLine)
			continue
		}

		// Numbers: INT or DEC, numeric underscores preserved
		if isDigit(ch) {
			start := i
			for i < n && (isDigit(src[i]) || src[i] == '_') {
				i++
			}
			typ := INT
			if i < n && src[i] == '.' && i+1 < n && isDigit(src[i+1]) {
				i++
				for i < n && (isDigit(src[i]) || src[i] == '_') {
					i++
				}
				typ = DEC
			}
			emit(typ, src[start:i], line)
			continue
		}

		if r, size := utf8.DecodeRuneInString(src[i:]); isIdentStart(r) {
			start := i
			i += size
			for i < n {
				r, size = utf8.DecodeRuneInString(src[i:])
				if !isIdentPart(r) {
					break
				}
				i += size
			}
			word := src[start:i]
			if kw, ok := keywords[word]; ok {
				emit(kw, word, line)
			} else {
				emit(ID, word, line)
			}
			continue
		}

		if ch == '#' && peek(1) == '{' {
			emit("#{", "#{", line)
			i += 2
			continue
		}
		two := func(a, b byte, typ string) bool {
			if ch == a && peek(1) == b {
				emit(typ, src[i:i+2], line)
				i += 2
				return true
			}
			return false
		}
		if two('=', '=', "==") || two('!', '=', "!=") || two('>', '=', ">=") || two('<', '=', "<=") ||
			two('&', '&', "&&") || two('|', '|', "||") || two('|', '>', "|>") || two('>', '>', ">>") {
			continue
		}

		switch ch {
		case '+', '-', '*', '/', '=', '{', '}', '[', ']', '>', '<', ';', '(', ')', ',', ':', '|':
			emit(string(ch), string(ch), line)
			i++
			continue
		}

		_, size := utf8.DecodeRuneInString(src[i:])
		emit(ILLEGAL, src[i:i+size], line)
		i += size
	}

	return out
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= 128 && unicode.IsLetter(r))
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}
