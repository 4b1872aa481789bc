package statement

import (
	"errors"
	"fmt"
)

// Error is returned by a transition whose precondition does not hold.
// The receiver of the failed call is unchanged and remains usable.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op names the transition that failed, e.g. "Limit".
	Op string

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes transition failures.
type ErrorCode string

const (
	// ErrCodeInvalidArgument indicates a bad argument, such as a
	// non-positive limit or "*" inside a selector batch.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// ErrCodeInvalidState indicates the statement cannot accept the call
	// in its current state, such as an alias with no selector to apply it to.
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
}

// IsInvalidArgument returns true if err is an invalid-argument Error.
// Uses errors.As to handle wrapped errors.
func IsInvalidArgument(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == ErrCodeInvalidArgument
	}
	return false
}

// IsInvalidState returns true if err is an invalid-state Error.
// Uses errors.As to handle wrapped errors.
func IsInvalidState(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == ErrCodeInvalidState
	}
	return false
}

func invalidArgument(op, format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Op: op, Message: fmt.Sprintf(format, args...)}
}

func invalidState(op, format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidState, Op: op, Message: fmt.Sprintf(format, args...)}
}
