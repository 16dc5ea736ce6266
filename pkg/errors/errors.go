package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures so callers can branch on kind instead of
// parsing message text.
type ErrorType string

const (
	// ErrorTypeUnauthenticated indicates no viewer identity could be resolved
	ErrorTypeUnauthenticated ErrorType = "UNAUTHENTICATED"

	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeForbidden indicates the viewer may not perform the operation
	ErrorTypeForbidden ErrorType = "FORBIDDEN"

	// ErrorTypeValidation indicates invalid input
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeDateConflict indicates a booking range overlaps already reserved days
	ErrorTypeDateConflict ErrorType = "DATE_CONFLICT"

	// ErrorTypeConflict indicates a concurrent modification of existing data
	ErrorTypeConflict ErrorType = "CONFLICT"

	// ErrorTypeHostUnpayable indicates the host has no connected payout account
	ErrorTypeHostUnpayable ErrorType = "HOST_UNPAYABLE"

	// ErrorTypePaymentFailed indicates the payment processor did not report success
	ErrorTypePaymentFailed ErrorType = "PAYMENT_FAILED"

	// ErrorTypePersistenceFailed indicates a storage write failed after earlier side effects
	ErrorTypePersistenceFailed ErrorType = "PERSISTENCE_FAILED"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeExternal indicates an error from an external service
	ErrorTypeExternal ErrorType = "EXTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// TypeOf returns the classification of err; plain errors count as internal
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// NewUnauthenticatedError creates a new unauthenticated error
func NewUnauthenticatedError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthenticated,
		Message: message,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeForbidden,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewDateConflictError creates a new date conflict error
func NewDateConflictError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeDateConflict,
		Message: message,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: message,
	}
}

// NewHostUnpayableError creates a new host unpayable error
func NewHostUnpayableError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeHostUnpayable,
		Message: message,
	}
}

// NewPaymentFailedError creates a new payment failed error
func NewPaymentFailedError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypePaymentFailed,
		Message: message,
		Err:     err,
	}
}

// NewPersistenceFailedError creates a new persistence failed error
func NewPersistenceFailedError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypePersistenceFailed,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}
