package apierror

import (
	"encoding/json"
	"net/http"
)

// APIError is the wire shape for all error responses.
type APIError struct {
	Detail     string `json:"detail"`
	StatusCode int    `json:"status_code"`
}

// New creates an APIError with the given status code and detail message.
func New(statusCode int, detail string) *APIError {
	return &APIError{
		Detail:     detail,
		StatusCode: statusCode,
	}
}

func (e *APIError) Error() string {
	return e.Detail
}

// ToJSON serializes the error for direct writing to a response body.
func (e *APIError) ToJSON() []byte {
	b, err := json.Marshal(e)
	if err != nil {
		return []byte(`{"detail":"Internal server error","status_code":500}`)
	}
	return b
}

// Unauthorized returns a 401 error for missing or invalid identity.
func Unauthorized(detail string) *APIError {
	return New(http.StatusUnauthorized, detail)
}

// BadRequest returns a 400 error for invalid request payloads.
func BadRequest(detail string) *APIError {
	return New(http.StatusBadRequest, detail)
}

// NotFound returns a 404 error.
func NotFound(detail string) *APIError {
	return New(http.StatusNotFound, detail)
}

// Conflict returns a 400 error for duplicate-id collisions. The upstream
// contract reports conflicts as bad requests rather than 409.
func Conflict(detail string) *APIError {
	return New(http.StatusBadRequest, detail)
}

// InternalError returns a 500 error.
func InternalError(detail string) *APIError {
	return New(http.StatusInternalServerError, detail)
}
