// Package apperrors defines the error kinds raised by the overtime workflow.
// Messages are user-facing and kept in Polish, matching the rest of the
// application surface.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindAuthentication Kind = iota
	KindValidation
	KindConflict
	KindConfiguration
	KindNotFound
	KindPersistence
)

// Error carries an error kind together with a user-presentable message.
// An optional wrapped cause (store errors) is kept for logging.
type Error struct {
	Kind    Kind
	Message string
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

// Is lets errors.Is match two *Error values by kind alone, so callers can
// compare against the bare sentinels below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrAuthentication = &Error{Kind: KindAuthentication}
	ErrValidation     = &Error{Kind: KindValidation}
	ErrConflict       = &Error{Kind: KindConflict}
	ErrConfiguration  = &Error{Kind: KindConfiguration}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrPersistence    = &Error{Kind: KindPersistence}
)

func Authentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Configuration(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Persistence(message string, cause error) *Error {
	return &Error{Kind: KindPersistence, Message: message, cause: cause}
}

// HTTPStatus maps an error to the status code the API responds with.
// Unrecognized errors are treated as persistence failures.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindConfiguration:
		return http.StatusInternalServerError
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage extracts the presentable message, falling back to a generic
// Polish persistence message for unexpected errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Wystąpił nieoczekiwany błąd"
}
