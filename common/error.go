package common

import (
	"errors"
	"fmt"
)

// Code is the error code.
type Code int

const (
	// Ok is the OK code.
	Ok Code = 0
	// Internal is the internal error.
	Internal Code = 1
	// NotAuthorized is the not authorized error.
	NotAuthorized Code = 2
	// Invalid is the invalid request error.
	Invalid Code = 3
	// NotFound is the not found error.
	NotFound Code = 4
	// Conflict is the conflict error.
	Conflict Code = 5
)

// Error represents an application-specific error with an error code.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return e.Err.Error()
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return Internal.
func ErrorCode(err error) Code {
	var e *Error
	if err == nil {
		return Ok
	} else if errors.As(err, &e) {
		return e.Code
	}
	return Internal
}

// Errorf constructs a new Error with the given code and formatted message.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{
		Code: code,
		Err:  fmt.Errorf(format, args...),
	}
}
