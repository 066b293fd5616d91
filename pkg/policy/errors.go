package policy

import "errors"

var (
	// ErrOutOfRange is returned when a requested difficulty falls outside
	// the valid range for the operation being performed.
	ErrOutOfRange = errors.New("policy: difficulty out of range")

	// ErrUnknownPattern is returned when SetPattern is given a pattern
	// name outside the recognized closed set.
	ErrUnknownPattern = errors.New("policy: unrecognized pattern")
)
