package evaluator

import (
	"github.com/spacemonkeygo/errors"
)

/*
	Raised when evaluating a statement or expression fails.

	The message is the language-level error ("Division by zero",
	"Identifier can not be found: x"); the class only marks where it came from.
*/
var Error *errors.ErrorClass = errors.NewClass("EvalError")

/*
	Raised when the evaluator itself panics.  Seeing one is a bug in a
	builtin, not in the script.
*/
var InternalError *errors.ErrorClass = Error.NewClass("EvalInternalError")
