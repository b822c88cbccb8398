package service

import (
	"errors"
	"fmt"
	"net/http"
)

// Code 机器可读的错误码，与 api.APIError.Code 一致
type Code string

const (
	CodeValidation         Code = "ERR_VALIDATION"
	CodeNotFound           Code = "ERR_NOT_FOUND"
	CodePermissionDenied   Code = "ERR_FORBIDDEN"
	CodeConflict           Code = "ERR_CONFLICT"
	CodeInvalidCredentials Code = "ERR_INVALID_CREDENTIALS"
	CodeRegistrationClosed Code = "ERR_REGISTRATION_CLOSED"
	CodeUserDisabled       Code = "ERR_USER_DISABLED"
)

// HTTPStatus returns the status a handler should answer with.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodePermissionDenied, CodeRegistrationClosed, CodeUserDisabled:
		return http.StatusForbidden
	case CodeConflict:
		return http.StatusConflict
	case CodeInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error carrying a code, a user-facing message and optional details.
type Error struct {
	Code    Code
	Message string
	Details any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same Code, so errors.Is(err, ErrNotFound) works
// for errors built with NotFound("...").
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithCause wraps an underlying error without changing the public message.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Details: e.Details, cause: err}
}

var (
	ErrValidation         = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrNotFound           = &Error{Code: CodeNotFound, Message: "not found"}
	ErrPermissionDenied   = &Error{Code: CodePermissionDenied, Message: "permission denied"}
	ErrConflict           = &Error{Code: CodeConflict, Message: "conflict"}
	ErrInvalidCredentials = &Error{Code: CodeInvalidCredentials, Message: "invalid email or password"}
	ErrRegistrationClosed = &Error{Code: CodeRegistrationClosed, Message: "registration is disabled"}
	ErrUserDisabled       = &Error{Code: CodeUserDisabled, Message: "user is disabled"}
)

func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func PermissionDenied(msg string) *Error {
	return &Error{Code: CodePermissionDenied, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}
