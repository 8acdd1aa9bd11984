// Package errors provides application-level error types and utilities.
// It defines the allocation error taxonomy surfaced by the overtime engine
// alongside the common validation, not found, and authorization errors.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation_error"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeInternal     ErrorType = "internal_error"
	ErrorTypeBadRequest   ErrorType = "bad_request"

	// Allocation outcomes. These are expected business results, rendered
	// verbatim to the caller rather than wrapped as generic failures.
	ErrorTypePostingClosed    ErrorType = "posting_closed"
	ErrorTypeDeadlinePassed   ErrorType = "deadline_passed"
	ErrorTypeAlreadySignedUp  ErrorType = "already_signed_up"
	ErrorTypeNoSlotsAvailable ErrorType = "no_slots_available"

	// Infrastructure outcomes. Both are retryable at the caller's
	// discretion; the engine never retries internally.
	ErrorTypeContention         ErrorType = "contention"
	ErrorTypePersistenceFailure ErrorType = "persistence_failure"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newAppError(errType ErrorType, code int, message string, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details...)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details...)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details...)
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details...)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, message, details...)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details...)
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details...)
}

// NewPostingClosedError reports an action against a posting that is no longer open.
func NewPostingClosedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypePostingClosed, http.StatusConflict, message, details...)
}

// NewDeadlinePassedError reports a claim submitted after the posting's signup deadline.
func NewDeadlinePassedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeDeadlinePassed, http.StatusConflict, message, details...)
}

// NewAlreadySignedUpError reports a second active signup attempt by the same officer.
func NewAlreadySignedUpError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeAlreadySignedUp, http.StatusConflict, message, details...)
}

// NewNoSlotsAvailableError reports a claim against a posting with no open slots.
func NewNoSlotsAvailableError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNoSlotsAvailable, http.StatusConflict, message, details...)
}

// NewContentionError reports a failure to serialize access to a posting
// within the lock wait budget. Retryable.
func NewContentionError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeContention, http.StatusServiceUnavailable, message, details...)
}

// NewPersistenceFailureError reports a storage-layer error. The operation is
// rejected rather than risking capacity drift.
func NewPersistenceFailureError(message string, details ...string) *AppError {
	return newAppError(ErrorTypePersistenceFailure, http.StatusServiceUnavailable, message, details...)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return isType(err, ErrorTypeConflict)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsPostingClosedError checks if the error reports a closed posting.
func IsPostingClosedError(err error) bool {
	return isType(err, ErrorTypePostingClosed)
}

// IsDeadlinePassedError checks if the error reports an expired signup deadline.
func IsDeadlinePassedError(err error) bool {
	return isType(err, ErrorTypeDeadlinePassed)
}

// IsAlreadySignedUpError checks if the error reports a duplicate signup.
func IsAlreadySignedUpError(err error) bool {
	return isType(err, ErrorTypeAlreadySignedUp)
}

// IsNoSlotsAvailableError checks if the error reports an exhausted posting.
func IsNoSlotsAvailableError(err error) bool {
	return isType(err, ErrorTypeNoSlotsAvailable)
}

// IsContentionError checks if the error reports lock contention.
func IsContentionError(err error) bool {
	return isType(err, ErrorTypeContention)
}

// IsRetryable reports whether the caller may retry the operation.
func IsRetryable(err error) bool {
	return isType(err, ErrorTypeContention) || isType(err, ErrorTypePersistenceFailure)
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL duplicate entry error
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// PostgreSQL unique violation
	if strings.Contains(errStr, "unique constraint") || strings.Contains(errStr, "violates unique constraint") {
		return true
	}
	return false
}
