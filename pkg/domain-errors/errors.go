// Package domainerrors carries coded errors from services to transports.
//
// Services return *Error values (optionally wrapping a cause); transports map the
// Code to a status without inspecting messages.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeValidation         Code = "validation_error"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeTimeout            Code = "timeout"
	CodeInvariantViolation Code = "invariant_violation"
	CodeInternal           Code = "internal_error"
)

// Error is a coded domain error.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// New builds an error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to a cause.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same code and message, so tests can use
// errors.Is against a freshly built value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// HasCode reports whether any *Error in err's chain carries code.
func HasCode(err error, code Code) bool {
	var de *Error
	for err != nil {
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// Is is shorthand for HasCode.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
