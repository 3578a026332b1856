// Package gemmbench structured error types
package gemmbench

import (
	"fmt"
)

// ErrorType represents categories of errors
type ErrorType int

const (
	// Invalid argument errors
	ErrTypeInvalidArg ErrorType = iota
	// Operand shape errors
	ErrTypeDimension
	// Execution errors
	ErrTypeExecution
	// Numerical errors
	ErrTypeNumerical
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Op      string      // Operation that failed
	Message string      // Human-readable message
	Err     error       // Underlying error if any
	Context interface{} // Additional context
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gemmbench %s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("gemmbench %s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeInvalidArg:
		return "InvalidArgument"
	case ErrTypeDimension:
		return "Dimension"
	case ErrTypeExecution:
		return "Execution"
	case ErrTypeNumerical:
		return "Numerical"
	default:
		return "Unknown"
	}
}

// NewInvalidArgError creates an invalid argument error
func NewInvalidArgError(op string, message string) error {
	return &Error{
		Type:    ErrTypeInvalidArg,
		Op:      op,
		Message: message,
	}
}

// NewDimensionError creates an error for operands whose sizes disagree
func NewDimensionError(op string, message string) error {
	return &Error{
		Type:    ErrTypeDimension,
		Op:      op,
		Message: message,
	}
}

// NewExecutionError creates an execution error
func NewExecutionError(op string, message string, err error) error {
	return &Error{
		Type:    ErrTypeExecution,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewNumericalError creates a numerical error
func NewNumericalError(op string, message string, context interface{}) error {
	return &Error{
		Type:    ErrTypeNumerical,
		Op:      op,
		Message: message,
		Context: context,
	}
}

var (
	// ErrInvalidSize indicates a non-positive matrix order
	ErrInvalidSize = NewInvalidArgError("NewMatrix", "size must be positive")

	// ErrInvalidBlock indicates a non-positive tile width
	ErrInvalidBlock = NewInvalidArgError("Blocked", "block size must be positive")

	// ErrNilMatrix indicates a nil operand or result
	ErrNilMatrix = NewInvalidArgError("Multiply", "nil matrix")

	// ErrSizeMismatch indicates operands of different orders
	ErrSizeMismatch = NewDimensionError("Multiply", "matrices must share the same order")
)

// IsInvalidArgError checks if an error is an invalid argument error
func IsInvalidArgError(err error) bool {
	return hasType(err, ErrTypeInvalidArg)
}

// IsDimensionError checks if an error is a dimension error
func IsDimensionError(err error) bool {
	return hasType(err, ErrTypeDimension)
}

// IsExecutionError checks if an error is an execution error
func IsExecutionError(err error) bool {
	return hasType(err, ErrTypeExecution)
}

// IsNumericalError checks if an error is a numerical error
func IsNumericalError(err error) bool {
	return hasType(err, ErrTypeNumerical)
}

func hasType(err error, t ErrorType) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Type == t {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
