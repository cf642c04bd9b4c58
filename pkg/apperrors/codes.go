package apperrors

// ErrorCode classifies application errors.
type ErrorCode string

// Error codes grouped by domain.
const (
	// Authentication and access
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeForbidden          ErrorCode = "FORBIDDEN"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Resources
	CodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	CodeJobNotFound         ErrorCode = "JOB_NOT_FOUND"
	CodeApplicationNotFound ErrorCode = "APPLICATION_NOT_FOUND"

	// Business rules
	CodeEmailAlreadyExists ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeAlreadyApplied     ErrorCode = "ALREADY_APPLIED"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeStorageError  ErrorCode = "STORAGE_ERROR"
)
