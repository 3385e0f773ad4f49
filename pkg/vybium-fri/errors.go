package vybiumfri

import "fmt"

// ErrorCode represents a FRI session error code
type ErrorCode int

const (
	// ErrUnknown represents an unknown error
	ErrUnknown ErrorCode = iota

	// ErrInvalidConfig represents an invalid configuration error
	ErrInvalidConfig

	// ErrFieldCreation represents a field creation error
	ErrFieldCreation

	// ErrInvalidPolynomial represents an invalid polynomial error
	ErrInvalidPolynomial

	// ErrProofGeneration represents a proof generation error
	ErrProofGeneration

	// ErrProofVerification represents a proof verification error
	ErrProofVerification
)

// FRIError represents a FRI session error
type FRIError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error returns the error message
func (e *FRIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vybium-fri error [%d]: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("vybium-fri error [%d]: %s", e.Code, e.Message)
}

// Unwrap returns the cause of the error
func (e *FRIError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error
func (e *FRIError) Is(target error) bool {
	t, ok := target.(*FRIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
