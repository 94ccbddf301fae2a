// Package apperror carries a classified error from services to the HTTP layer.
package apperror

import (
	"errors"
	"fmt"

	"github.com/benedict-erwin/weather-insight/internal/constants"
)

// Kind classifies an application error
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindAuthentication:
		return "AUTHENTICATION_ERROR"
	case KindAuthorization:
		return "AUTHORIZATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}

// Error is an error with a kind, an envelope code and a client-safe message
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status the error should be answered with
func (e *Error) HTTPStatus() int {
	return constants.GetHTTPStatusFromCode(e.Code)
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Code: constants.CodeValidationFailed, Message: message}
}

func Authentication(message string) *Error {
	if message == "" {
		message = "Authentication failed"
	}
	return &Error{Kind: KindAuthentication, Code: constants.CodeUnauthorized, Message: message}
}

func Authorization(message string) *Error {
	if message == "" {
		message = "Access denied"
	}
	return &Error{Kind: KindAuthorization, Code: constants.CodeForbidden, Message: message}
}

// NotFound builds "<resource> not found"
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Code: constants.CodeResourceNotFound, Message: resource + " not found"}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Code: constants.CodeConflict, Message: message}
}

// Internal wraps an unexpected error; its message never reaches the client
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: constants.CodeInternalError, Message: "Internal server error", Err: err}
}

// WithCode overrides the envelope code
func (e *Error) WithCode(code int) *Error {
	e.Code = code
	return e
}

// Wrap attaches the underlying cause
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// As extracts an *Error from err, wrapping anything else as internal
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
