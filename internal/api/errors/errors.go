package errors

import (
	"fmt"
	"net/http"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation          ErrorKind = "validation"
	KindBadRequest          ErrorKind = "bad_request"
	KindPayloadTooLarge     ErrorKind = "payload_too_large"
	KindNotFound            ErrorKind = "not_found"
	KindTranscriptionFailed ErrorKind = "transcription_failed"
	KindPersistenceFailed   ErrorKind = "persistence_failed"
	KindInternal            ErrorKind = "internal"
	KindServiceUnavailable  ErrorKind = "service_unavailable"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"error"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Code      string            `json:"code,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindNotFound:
		return http.StatusNotFound
	case KindTranscriptionFailed:
		return http.StatusBadGateway
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewPayloadTooLargeError creates an error for uploads over the configured limit
func NewPayloadTooLargeError(size, limit int64) *APIError {
	return &APIError{
		Kind:    KindPayloadTooLarge,
		Message: fmt.Sprintf("file size %d bytes exceeds the %d byte limit", size, limit),
		Details: map[string]string{"file_data": "too large"},
	}
}

// NewRequestTooLargeError creates an error for request bodies over the accepted size
func NewRequestTooLargeError(limit int64) *APIError {
	return &APIError{
		Kind:    KindPayloadTooLarge,
		Message: fmt.Sprintf("request body exceeds the %d byte limit", limit),
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewTranscriptionError creates the generic error returned when the speech model fails.
// Provider detail stays in the server logs.
func NewTranscriptionError() *APIError {
	return &APIError{
		Kind:    KindTranscriptionFailed,
		Message: "Transcription failed. See server logs for details.",
	}
}

// NewPersistenceError creates the error returned when neither the spreadsheet
// nor any local backup accepted the data
func NewPersistenceError() *APIError {
	return &APIError{
		Kind:    KindPersistenceFailed,
		Message: "Failed to store result in the spreadsheet or local backup",
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// NewServiceUnavailableError creates a service unavailable error
func NewServiceUnavailableError(message string) *APIError {
	return &APIError{
		Kind:    KindServiceUnavailable,
		Message: message,
	}
}
