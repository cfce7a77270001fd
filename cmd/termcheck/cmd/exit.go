package cmd

import (
	"errors"
	"fmt"
)

// exitError is returned by check/search to signal a specific exit code.
// Same convention as grep: 0=clean, 1=flagged (or found), 2=error.
type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string {
	switch {
	case e.err != nil:
		return e.err.Error()
	case e.code == 1:
		return "flagged"
	default:
		return fmt.Sprintf("exit %d", e.code)
	}
}

func (e exitError) Unwrap() error { return e.err }

// ExitCode extracts the exit code from an exitError.
// Returns -1 if the error is not an exitError.
func ExitCode(err error) int {
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return -1
}
