// Package apperr defines the uniform status-carrying error value used by
// the service layer and translated into the HTTP error envelope by the
// handler layer.
package apperr

import (
	"errors"
	"net/http"
)

// Error carries an HTTP status alongside a client-safe message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error   { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }
func NotFound(message string) *Error     { return New(http.StatusNotFound, message) }
func Conflict(message string) *Error     { return New(http.StatusConflict, message) }
func Internal(message string) *Error     { return New(http.StatusInternalServerError, message) }

// From extracts an *Error from err's chain. Unrecognized errors map to a
// generic 500 so internal details never reach the client.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("internal server error")
}
