package errors

import (
	"errors"
	"fmt"
)

// Code classifies an error for callers that need to map failures to a
// response or a retry decision without parsing message strings.
type Code string

const (
	ErrCodeInternal     Code = "internal"
	ErrCodeNotFound     Code = "not_found"
	ErrCodeConflict     Code = "conflict"
	ErrCodeInvalidInput Code = "invalid_input"
	ErrCodeUnavailable  Code = "unavailable"
)

// Error is a coded error carrying an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// NotFound reports that the named resource does not exist.
func NotFound(resource, id string) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s '%s' not found", resource, id),
	}
}

// InvalidInput reports a validation failure on a single field.
func InvalidInput(field, reason string) *Error {
	return &Error{
		Code:    ErrCodeInvalidInput,
		Message: fmt.Sprintf("%s: %s", field, reason),
	}
}

// CodeOf returns the code of the first coded error in err's chain, or
// ErrCodeInternal when none is present.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ErrCodeInternal
}

// HasCode reports whether err's chain contains a coded error with the
// given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}
