package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
var InvalidAPIKey = &Failure{Code: http.StatusUnauthorized, Message: "invalid api key"}

// ErrPersistence marks errors surfaced by the storage layer. Callers treat it as retryable once.
var ErrPersistence = errors.New("persistence error")

type persistenceError struct {
	err error
}

func (e *persistenceError) Error() string {
	return ErrPersistence.Error() + ": " + e.err.Error()
}

func (e *persistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.err}
}

// Persistence wraps a storage error so that errors.Is(err, ErrPersistence) holds.
func Persistence(err error) error {
	if err == nil {
		return nil
	}

	return &persistenceError{err: err}
}

func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests, or nil for a nil error.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: http.StatusBadRequest, Message: err.Error()}
}

func BadRequestFromString(msg string) error {
	return &Failure{Code: http.StatusBadRequest, Message: msg}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(message string) error {
	return &Failure{Code: http.StatusNotFound, Message: message}
}

// Conflict returns a new Failure with code for conflict situations, such as a booking that
// already moved on or a duplicate row.
func Conflict(message string) error {
	return &Failure{Code: http.StatusConflict, Message: message}
}

// Coder is implemented by domain errors that know their HTTP status.
type Coder interface {
	HTTPCode() int
}

// GetCode returns the HTTP status of err, defaulting to 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	var coder Coder
	if errors.As(err, &coder) {
		return coder.HTTPCode()
	}

	return http.StatusInternalServerError
}

// IsClientError reports whether err is the caller's fault. Retrying such an error, or
// redelivering the message that caused it, gives the same result.
func IsClientError(err error) bool {
	if err == nil {
		return false
	}

	code := GetCode(err)

	return code >= http.StatusBadRequest && code < http.StatusInternalServerError
}
