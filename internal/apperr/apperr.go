// Package apperr defines the tagged domain errors raised by the core
// services (§7 of the specification) and the HTTP status each maps to.
// Services never panic or use exceptions for control flow; they return one
// of these sentinel-wrapped errors and the transport layer translates it.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a domain error variant.
type Code string

const (
	CodeValidation           Code = "validation_error"
	CodeInvalidSource        Code = "invalid_source"
	CodePlanNotFound         Code = "plan_not_found"
	CodeReadingPlanNotFound  Code = "reading_plan_not_found"
	CodeNotificationNotFound Code = "notification_not_found"
	CodePlanConflict         Code = "plan_conflict"
	CodeContextMismatch      Code = "context_mismatch"
	CodeSetOrderViolation    Code = "set_order_violation"
	CodeUnavailable          Code = "unavailable"
)

// httpStatus maps each Code to the transport status from §7.
var httpStatus = map[Code]int{
	CodeValidation:           http.StatusBadRequest,
	CodeInvalidSource:        http.StatusBadRequest,
	CodePlanNotFound:         http.StatusNotFound,
	CodeReadingPlanNotFound:  http.StatusNotFound,
	CodeNotificationNotFound: http.StatusNotFound,
	CodePlanConflict:         http.StatusConflict,
	CodeContextMismatch:      http.StatusConflict,
	CodeSetOrderViolation:    http.StatusUnprocessableEntity,
	CodeUnavailable:          http.StatusServiceUnavailable,
}

// Error is a tagged domain error. Callers compare against a Code via As,
// not string matching.
type Error struct {
	Code    Code
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// HTTPStatus returns the transport status code for e, defaulting to 500.
func (e *Error) HTTPStatus() int {
	if s, ok := httpStatus[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// New builds a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a domain code to an underlying error, preserving it for
// errors.Unwrap/errors.Is chains.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, err: err}
}

// Is reports whether err carries the given Code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// StatusFor returns the HTTP status for err, defaulting to 500 for
// untagged errors (§7 "other integrity errors propagate as 500").
func StatusFor(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// CodeFor returns the Code for err, or empty string if untagged.
func CodeFor(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
