package main

import (
	"github.com/spacemonkeygo/errors"
)

const (
	exitSuccess = 0
	exitFailure = 1
	exitBadArgs = 2
)

// grouping, do not instantiate
var Error *errors.ErrorClass = errors.NewClass("ElfError")

/*
	Raised when the command line does not name what to work on.
*/
var BadArgs *errors.ErrorClass = Error.NewClass("BadArgs")

/*
	Raised when a one-shot command could not finish: the file could not
	be read, did not parse, or failed while running.
*/
var Failed *errors.ErrorClass = Error.NewClass("Failed")

func exitCode(err error) int {
	if BadArgs.Contains(err) {
		return exitBadArgs
	}
	return exitFailure
}
