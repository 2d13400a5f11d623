package grading

import "errors"

// Grading errors. ErrBackend wraps model invocation failures;
// ErrSchema wraps responses that parse but violate the output contract.
var (
	ErrBackend = errors.New("grading backend failed")
	ErrSchema  = errors.New("grading response violates output contract")
)
