package app

import (
	"fmt"
	"net/http"
)

// DomainError is the one error shape the HTTP layer knows how to render:
// Status becomes the response code, Code and Message fill the JSON
// envelope, and Details carries field-level validation problems when
// there are any.
type DomainError struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *DomainError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func domainError(status int, code, message string, details any) *DomainError {
	return &DomainError{
		Status:  status,
		Code:    code,
		Message: message,
		Details: details,
	}
}

func errNotFound() *DomainError {
	return domainError(http.StatusNotFound, "NOT_FOUND", "Not found", nil)
}

func errValidation(message string, details any) *DomainError {
	return domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", message, details)
}
