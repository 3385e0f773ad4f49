package core

import "errors"

var (
	// ErrDivisionByZero is returned when inverting or dividing by the
	// additive identity of a field.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidDomain is returned when an evaluation domain cannot be
	// constructed from the given generator, order and coset offset.
	ErrInvalidDomain = errors.New("invalid evaluation domain")

	// ErrIndexOutOfRange is returned when an index falls outside the
	// bounds of a domain or a committed evaluation vector.
	ErrIndexOutOfRange = errors.New("index out of range")
)
