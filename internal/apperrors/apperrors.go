package apperrors

import (
	"errors"
	"net/http"
)

// APIError is an error surfaced to HTTP callers with a status code and
// bilingual (English/Arabic) messages. Services return these for expected
// failures; the error middleware renders them into the response envelope.
type APIError struct {
	Status    int    `json:"-"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	MessageAr string `json:"message_ar"`
}

func (e *APIError) Error() string {
	return e.Message
}

// NotFound creates a 404 error
func NotFound(message, messageAr string) *APIError {
	return &APIError{
		Status:    http.StatusNotFound,
		Code:      "NOT_FOUND",
		Message:   message,
		MessageAr: messageAr,
	}
}

// BadRequest creates a 400 error
func BadRequest(message, messageAr string) *APIError {
	return &APIError{
		Status:    http.StatusBadRequest,
		Code:      "BAD_REQUEST",
		Message:   message,
		MessageAr: messageAr,
	}
}

// Conflict creates a 409 error
func Conflict(message, messageAr string) *APIError {
	return &APIError{
		Status:    http.StatusConflict,
		Code:      "CONFLICT",
		Message:   message,
		MessageAr: messageAr,
	}
}

// Unauthorized creates a 401 error
func Unauthorized(message, messageAr string) *APIError {
	return &APIError{
		Status:    http.StatusUnauthorized,
		Code:      "UNAUTHORIZED",
		Message:   message,
		MessageAr: messageAr,
	}
}

// Forbidden creates a 403 error
func Forbidden(message, messageAr string) *APIError {
	return &APIError{
		Status:    http.StatusForbidden,
		Code:      "FORBIDDEN",
		Message:   message,
		MessageAr: messageAr,
	}
}

// Internal creates a 500 error with a generic caller-facing message
func Internal() *APIError {
	return &APIError{
		Status:    http.StatusInternalServerError,
		Code:      "INTERNAL",
		Message:   "Internal server error",
		MessageAr: "خطأ داخلي في الخادم",
	}
}

// AsAPIError extracts an APIError from an error chain, if present
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether the error is a 404 APIError
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusNotFound
}

// IsBadRequest reports whether the error is a 400 APIError
func IsBadRequest(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusBadRequest
}

// IsConflict reports whether the error is a 409 APIError
func IsConflict(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == http.StatusConflict
}
