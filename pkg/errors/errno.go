// Package errors provides the structured error code system for BrokerGPT.
//
// Error Code Format: AABBCCC (7 digits)
//
//	AA  (00-99): Service/Module code
//	BB  (00-99): Category code
//	CCC (000-999): Sequence number within the category
//
// Service Codes (AA):
//
//	00: Common/Base errors
//	10-19: Infrastructure errors (DB, cache)
//	20-79: Business errors
//	90-99: Third-party service errors
//
// Category Codes (BB):
//
//	00: Success
//	01: Request/Validation errors (400)
//	04: Resource not found errors (404)
//	06: Rate limiting errors (429)
//	07: Internal errors (500)
//	08: Database errors (500)
//	10: Network errors (502/503)
//	11: Timeout errors (504)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Errno represents a structured error with code and message.
type Errno struct {
	// Code is the unique error code.
	Code int `json:"code"`

	// HTTP is the HTTP status code to return.
	HTTP int `json:"-"`

	// Message is the user-facing error message.
	Message string `json:"message"`

	// cause is the underlying error.
	cause error
}

// MakeCode builds an error code from service, category and sequence parts.
func MakeCode(service, category, seq int) int {
	return service*100000 + category*1000 + seq
}

// Error implements the error interface.
func (e *Errno) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("errno %d: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("errno %d: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Errno) Unwrap() error {
	return e.cause
}

// HTTPStatus returns the HTTP status code for the error.
func (e *Errno) HTTPStatus() int {
	if e.HTTP == 0 {
		return http.StatusInternalServerError
	}
	return e.HTTP
}

// WithCause returns a copy of the Errno carrying the given cause.
func (e *Errno) WithCause(cause error) *Errno {
	clone := *e
	clone.cause = cause
	return &clone
}

// WithMessage returns a copy of the Errno with a custom message.
func (e *Errno) WithMessage(format string, args ...interface{}) *Errno {
	clone := *e
	clone.Message = fmt.Sprintf(format, args...)
	return &clone
}

// FromError converts any error into an Errno. Errno values pass through
// unchanged; everything else is wrapped as ErrInternal.
func FromError(err error) *Errno {
	if err == nil {
		return OK
	}
	var e *Errno
	if errors.As(err, &e) {
		return e
	}
	return ErrInternal.WithCause(err)
}

// Predefined errors.
var (
	// OK represents success.
	OK = &Errno{Code: 0, HTTP: http.StatusOK, Message: "OK"}

	// ErrInvalidParam indicates a malformed or missing request parameter.
	ErrInvalidParam = &Errno{Code: MakeCode(0, 1, 1), HTTP: http.StatusBadRequest, Message: "Invalid parameter"}

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = &Errno{Code: MakeCode(0, 4, 1), HTTP: http.StatusNotFound, Message: "Resource not found"}

	// ErrInternal indicates an unexpected server-side failure.
	ErrInternal = &Errno{Code: MakeCode(0, 7, 1), HTTP: http.StatusInternalServerError, Message: "Internal server error"}

	// ErrDatabase indicates a primary-store failure that could not be degraded.
	ErrDatabase = &Errno{Code: MakeCode(10, 8, 1), HTTP: http.StatusInternalServerError, Message: "Database error"}

	// ErrAssistantUnavailable indicates the chat provider is rate limited or down.
	ErrAssistantUnavailable = &Errno{Code: MakeCode(90, 6, 1), HTTP: http.StatusServiceUnavailable, Message: "Assistant temporarily unavailable"}

	// ErrUpstreamTimeout indicates a third-party call timed out.
	ErrUpstreamTimeout = &Errno{Code: MakeCode(90, 11, 1), HTTP: http.StatusGatewayTimeout, Message: "Upstream request timed out"}
)
