package live

import (
	"github.com/spacemonkeygo/errors"
)

// grouping, do not instantiate
var Error *errors.ErrorClass = errors.NewClass("LiveError")

/*
	Raised when re-applying one statement to the environment fails.

	Never fatal to an iteration: the statement is reported and skipped,
	and it is retried only once a later edit marks it dirty again.
*/
var ApplyError *errors.ErrorClass = Error.NewClass("ApplyError")

// Message returns the message of the innermost error err wraps, without
// the class names each layer adds.
func Message(err error) string {
	for {
		if _, ok := err.(*errors.Error); !ok {
			return err.Error()
		}
		inner := errors.WrappedErr(err)
		if inner == nil {
			return errors.GetMessage(err)
		}
		err = inner
	}
}
