package infrastructure

import (
	"errors"
	"net/http"
)

// APIError is the single failure shape the core exposes. Every operation
// either succeeds or returns one of the constructors below; raw storage
// errors never cross a handler boundary.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewBadRequest(message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Message: message}
}

func NewUnauthorized(message string) *APIError {
	return &APIError{StatusCode: http.StatusUnauthorized, Message: message}
}

func NewForbidden(message string) *APIError {
	return &APIError{StatusCode: http.StatusForbidden, Message: message}
}

func NewNotFound(message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Message: message}
}

func NewConflict(message string) *APIError {
	return &APIError{StatusCode: http.StatusConflict, Message: message}
}

func NewInternal(message string) *APIError {
	return &APIError{StatusCode: http.StatusInternalServerError, Message: message}
}

// AsAPIError normalizes any error into an APIError, hiding everything
// that is not already part of the taxonomy behind a generic 500.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewInternal("internal server error")
}

var (
	ErrMissingToken = NewUnauthorized("missing access token")
	ErrInvalidToken = NewUnauthorized("invalid access token")
	ErrTokenExpired = NewUnauthorized("access token has expired")
)
