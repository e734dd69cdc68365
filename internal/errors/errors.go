package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserAlreadyExists is returned when the username or email is already registered.
	ErrUserAlreadyExists = errors.New("username or email already exists")
	// ErrInvalidCredentials is returned when the username is unknown or the password does not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrTodoNotFound is returned when no todo matches the id for the given owner.
	// A todo owned by someone else is reported the same way.
	ErrTodoNotFound = errors.New("todo not found or unauthorized")
)

// MessageInternal is the only message clients see for unexpected failures.
const MessageInternal = "internal server error"

// ValidationError describes malformed or missing request input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"userId is required"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Success: false,
		Code:    e.StatusCode,
		Message: e.Message,
	}
}

// IsInternal reports whether the error hides an unexpected failure.
func (e *HTTPError) IsInternal() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// MapErrorToHTTP maps domain errors to HTTP errors.
// Duplicate registrations keep 400 rather than 409.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	var httpErr *HTTPError
	switch {
	case errors.As(err, &validationErr):
		return NewHTTPError(http.StatusBadRequest, validationErr.Message, "VALIDATION_ERROR")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusBadRequest, ErrUserAlreadyExists.Error(), "CONFLICT")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrTodoNotFound):
		return NewHTTPError(http.StatusNotFound, ErrTodoNotFound.Error(), "NOT_FOUND")
	case errors.As(err, &httpErr):
		return httpErr
	default:
		return NewHTTPError(http.StatusInternalServerError, MessageInternal, "INTERNAL_ERROR")
	}
}
