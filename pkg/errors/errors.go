package errors

import (
	"errors"
	"fmt"
)

// Code is a stable, transport independent error classification.
type Code string

const (
	CodeUnknown     Code = "unknown"
	CodeInvalid     Code = "invalid"
	CodeNotFound    Code = "not_found"
	CodeInternal    Code = "internal"
	CodeUnavailable Code = "unavailable"
)

// AppError carries a code and a human readable message alongside the cause.
type AppError struct {
	Code    Code
	Message string
	Err     error
	Meta    map[string]any
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *AppError) Unwrap() error { return e.Err }

// Detail is the message shown to clients. Internal failures include the
// cause so callers get the underlying description.
func (e *AppError) Detail() string {
	if e.Err != nil && e.Code != CodeNotFound && e.Code != CodeInvalid {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// WithMeta attaches metadata to the error.
func (e *AppError) WithMeta(k string, v any) *AppError {
	if e.Meta == nil {
		e.Meta = map[string]any{}
	}
	e.Meta[k] = v
	return e
}

// New creates a new AppError with code and message.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error with code and message.
func Wrap(err error, code Code, message string) *AppError {
	if err == nil {
		return New(code, message)
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of the outermost AppError in err's chain, or
// CodeUnknown when there is none.
func CodeOf(err error) Code {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// IsCode checks if an error has the provided code (through unwrapping).
func IsCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}
