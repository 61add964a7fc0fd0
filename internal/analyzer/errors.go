package analyzer

import (
	"errors"
	"fmt"
)

// Error kinds reported to callers.
const (
	KindInvalidInput     = "invalid_input"
	KindComputationError = "computation_error"
)

// InvalidInputError represents input the analyzer refuses to score, such as an empty resume.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid input for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid input: %s", e.Message)
}

// ComputationError represents an internal failure while producing a result.
type ComputationError struct {
	Message string
	Cause   error
}

func (e *ComputationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis failed: %s", e.Message)
}

func (e *ComputationError) Unwrap() error {
	return e.Cause
}

// Kind returns the machine-readable kind of err. Errors that are not InvalidInputError,
// including wrapped ones, are reported as computation errors.
func Kind(err error) string {
	var inputErr *InvalidInputError
	if errors.As(err, &inputErr) {
		return KindInvalidInput
	}
	return KindComputationError
}
