package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrInvalidState     = errors.New("invalid onboarding state")
	ErrConflict         = errors.New("conflict")
	ErrValidation       = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrStorage          = errors.New("storage failure")
	ErrRateLimited      = errors.New("rate limited")
	ErrNotification     = errors.New("notification delivery failed")
)

// Stable machine-readable error codes
const (
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidState     = "INVALID_STATE"
	CodeConflict         = "CONFLICT"
	CodeValidation       = "VALIDATION_ERROR"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeEmailNotVerified = "EMAIL_NOT_VERIFIED"
	CodeForbidden        = "FORBIDDEN"
	CodeInvalidOperation = "INVALID_OPERATION"
	CodeStorage          = "STORAGE_ERROR"
	CodeRateLimited      = "RATE_LIMITED"
	CodeNotification     = "NOTIFICATION_FAILED"
	CodeInternalError    = "INTERNAL_ERROR"
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func InvalidState(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeInvalidState, message, ErrInvalidState)
}

// Conflict reports a uniqueness violation on field.
func Conflict(field, message string) *AppError {
	e := NewAppError(http.StatusConflict, CodeConflict, message, ErrConflict)
	e.Field = field
	return e
}

func Validation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message, ErrValidation)
}

// Validationf formats a validation message.
func Validationf(format string, args ...interface{}) *AppError {
	return Validation(fmt.Sprintf(format, args...))
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func EmailNotVerified() *AppError {
	return NewAppError(http.StatusUnauthorized, CodeEmailNotVerified, "email is not verified", ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

func InvalidOperation(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, CodeInvalidOperation, message, ErrInvalidOperation)
}

func RateLimited(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, CodeRateLimited, message, ErrRateLimited)
}

// StorageError hides the underlying cause behind a generic message while keeping it unwrappable.
func StorageError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeStorage, "storage operation failed", fmt.Errorf("%w: %v", ErrStorage, err))
}

// NotificationFailed reports an outbound message that could not be delivered.
func NotificationFailed(message string, err error) *AppError {
	return NewAppError(http.StatusBadGateway, CodeNotification, message, fmt.Errorf("%w: %v", ErrNotification, err))
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// AsAppError returns err as an *AppError when it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// DuplicateKeyError reports a unique constraint violation on Field.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return "duplicate value for " + e.Field
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrAlreadyExists
}
