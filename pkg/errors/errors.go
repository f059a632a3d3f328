package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Category is the coarse, machine-readable failure class carried by every error response.
type Category string

const (
	CategoryUnauthenticated Category = "UNAUTHENTICATED"
	CategoryForbidden       Category = "FORBIDDEN"
	CategoryNotFound        Category = "NOT_FOUND"
	CategoryValidation      Category = "VALIDATION"
	CategoryPayloadTooLarge Category = "PAYLOAD_TOO_LARGE"
	CategoryRateLimited     Category = "RATE_LIMITED"
	CategoryConflict        Category = "CONFLICT"
	CategoryInternal        Category = "INTERNAL"
)

// HTTPError is an error that already knows how it is rendered to a client.
type HTTPError struct {
	Status   int
	Code     string
	Category Category
	Message  string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewHTTPError derives the category from status. Code defaults to the category.
func NewHTTPError(status int, message string) *HTTPError {
	cat := categoryForStatus(status)
	return &HTTPError{Status: status, Code: string(cat), Category: cat, Message: message}
}

// WithCode returns a copy of e carrying a more specific code.
func (e *HTTPError) WithCode(code string) *HTTPError {
	cp := *e
	cp.Code = code
	return &cp
}

func NewUnauthenticated(message string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message)
}

func NewForbidden(message string) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message)
}

func NewNotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

func NewValidation(code, message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message).WithCode(code)
}

func NewConflict(code, message string) *HTTPError {
	return NewHTTPError(http.StatusConflict, message).WithCode(code)
}

// ErrInternalServerError is rendered for anything that was not mapped explicitly.
var ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, "internal server error")

// AsHTTPError unwraps err into an *HTTPError when possible.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

func categoryForStatus(status int) Category {
	switch status {
	case http.StatusUnauthorized:
		return CategoryUnauthenticated
	case http.StatusForbidden:
		return CategoryForbidden
	case http.StatusNotFound:
		return CategoryNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return CategoryValidation
	case http.StatusRequestEntityTooLarge:
		return CategoryPayloadTooLarge
	case http.StatusTooManyRequests:
		return CategoryRateLimited
	case http.StatusConflict:
		return CategoryConflict
	default:
		return CategoryInternal
	}
}
