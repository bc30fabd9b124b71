// Package domainerrors carries coded errors across service boundaries so
// transport layers can translate failures without inspecting error text.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain failure. Handlers map codes to HTTP statuses; tests
// assert on codes rather than messages.
type Code string

const (
	CodeInvalidInput     Code = "invalid_input"
	CodeInvalidPhone     Code = "invalid_phone"
	CodeEmptyQuery       Code = "empty_query"
	CodeInvalidDateRange Code = "invalid_date_range"
	CodeInvalidFilter    Code = "invalid_filter"
	CodeInvalidCount     Code = "invalid_count"
	CodeNotFound         Code = "not_found"
	CodeConflict         Code = "conflict"
	CodeUnauthorized     Code = "unauthorized"
	CodeUnavailable      Code = "unavailable"
	CodeInternal         Code = "internal"
)

// Error is a coded domain error. It may wrap an underlying cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error with no underlying cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error. If err is nil,
// Wrap returns nil so call sites can wrap unconditionally.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether any error in the chain carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of the outermost coded error in the chain, or
// CodeInternal when the chain carries no code.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
