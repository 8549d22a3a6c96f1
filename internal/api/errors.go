package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrEmptyBaseURL is returned when the client is created without a backend URL.
	ErrEmptyBaseURL = errors.New("api base url can not be empty")

	// ErrEmptyToken is returned when a login response carries no token.
	ErrEmptyToken = errors.New("login response without token")
)

// Error is a non-2xx answer of the backend.
type Error struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}

	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// StatusOf returns the HTTP status of err, or 0 if err is not an *Error.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}

// MessageOf returns the backend message of err, or "" if there is none.
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}

	return ""
}

// IsForbidden reports whether err is a 403 answer.
func IsForbidden(err error) bool {
	return StatusOf(err) == http.StatusForbidden
}

// IsUnauthorized reports whether err is a 401 answer.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 answer.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}
