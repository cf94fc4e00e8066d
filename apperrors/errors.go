package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode groups failures the way the workflows treat them.
type ErrorCode string

const (
	// Bad input shape or range; aborts before persistence.
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Referenced record does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// Moderation or notification dependency unreachable/malformed.
	// Recovered locally, never fatal to a request.
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeDatabaseError      ErrorCode = "DATABASE_ERROR"
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
)

// AppError is the application error carried between services and handlers.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Validation builds a VALIDATION_FAILED error with field-level details.
func Validation(message string, fields map[string]string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest).WithDetails(fields)
}

// NotFound builds a NOT_FOUND error for the named resource.
func NotFound(resource string) *AppError {
	return New(CodeNotFound, resource+" not found", http.StatusNotFound)
}

// External wraps a dependency failure (moderation oracle, notification
// channel). Callers recover from it; it never aborts the request by itself.
func External(err error, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, message, http.StatusBadGateway)
}

// Database wraps an unexpected persistence failure.
func Database(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "database error", http.StatusInternalServerError)
}

// As extracts an *AppError from an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
