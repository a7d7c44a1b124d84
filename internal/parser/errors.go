package parser

import (
	"github.com/spacemonkeygo/errors"
)

// grouping, do not instantiate
var Error *errors.ErrorClass = errors.NewClass("ParseError")

/*
	Raised when source text cannot be turned into a program.

	A program with a syntax error is never returned in part; callers
	get either every top-level statement or this error.
*/
var SyntaxError *errors.ErrorClass = Error.NewClass("SyntaxError")

// failure is the panic payload used inside the recursive descent; Parse
// converts it into a SyntaxError at the boundary.
type failure struct {
	line int
	msg  string
}
