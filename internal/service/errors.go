package service

import (
	"fmt"
	"net/http"
)

// FieldError describes a single violated field rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the typed failure returned by the service layer. Validation
// failures carry a per-field list and map to 422; everything else maps to
// the generic envelope for its status code.
type Error struct {
	StatusCode int
	Status     string
	Message    string
	Fields     []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("validation failed: %d field error(s)", len(e.Fields))
	}
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

func newValidationError(fields ...FieldError) *Error {
	return &Error{StatusCode: http.StatusUnprocessableEntity, Status: "Unprocessable entity", Fields: fields}
}

func newNotFoundError(status string) *Error {
	return &Error{StatusCode: http.StatusNotFound, Status: status, Message: "Client error"}
}

func newUnauthenticatedError() *Error {
	return &Error{StatusCode: http.StatusUnauthorized, Status: "Unauthorized", Message: "Authentication required"}
}

func newBadRequestError(message string) *Error {
	return &Error{StatusCode: http.StatusBadRequest, Status: "Bad request", Message: message}
}
