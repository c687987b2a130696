package errors

import "fmt"

// ErrorCode represents a daybook error code.
type ErrorCode string

const (
	ErrMissingParameter ErrorCode = "MISSING_PARAMETER" // 400
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"         // 404
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// APIError represents a structured error with code, status, and message.
type APIError struct {
	Code    ErrorCode
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewMissingParameter creates a 400 error for an omitted required parameter.
// The message format ("Missing appId") is part of the wire contract.
func NewMissingParameter(name string) *APIError {
	return &APIError{
		Code:    ErrMissingParameter,
		Status:  400,
		Message: fmt.Sprintf("Missing %s", name),
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *APIError {
	return &APIError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for an unmatched resource.
func NewNotFound(identifier string) *APIError {
	return &APIError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *APIError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &APIError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is an APIError with the given code.
func Is(err error, code ErrorCode) bool {
	if aErr, ok := err.(*APIError); ok {
		return aErr.Code == code
	}
	return false
}
