package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// AppError is the application-wide error shape. Code identifies the failure
// class, Domain the subsystem that produced it.
type AppError struct {
	Code    ErrorCode   `json:"code"`
	Domain  string      `json:"domain"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError without a cause.
func New(code ErrorCode, domain, message string) *AppError {
	return &AppError{
		Code:    code,
		Domain:  domain,
		Message: message,
	}
}

// Wrap builds an AppError around an existing error.
func Wrap(err error, code ErrorCode, domain, message string) *AppError {
	return &AppError{
		Code:    code,
		Domain:  domain,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// MarshalJSON hides the wrapped cause from serialized output.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Domain  string      `json:"domain"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Domain:  e.Domain,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// InternalError wraps an unexpected system error.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal error")
}

// ValidationError builds a validation failure carrying field details.
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", "Validation failed").WithDetails(details)
}
