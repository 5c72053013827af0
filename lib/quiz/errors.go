package quiz

import "errors"

var (
	// ErrMissingParameter is returned when a command needs an id and none was given.
	ErrMissingParameter = errors.New("missing id parameter")
	// ErrInvalidParameter is returned when the id is not a non-negative integer.
	ErrInvalidParameter = errors.New("invalid id parameter")
	ErrNotFound         = errors.New("question not found")
	ErrValidation       = errors.New("validation failed")
	// ErrInputClosed aborts the running session. Prompters return it when
	// their input is closed or interrupted.
	ErrInputClosed = errors.New("input closed")
)
