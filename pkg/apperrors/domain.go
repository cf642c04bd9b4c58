package apperrors

// Predeclared domain errors. Compare with apperrors.Is.
var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid email or password")
	ErrEmailAlreadyExists = New(CodeEmailAlreadyExists, "auth", "Email already in use")
	ErrForbidden          = New(CodeForbidden, "auth", "Insufficient permissions")

	ErrUserNotFound        = New(CodeUserNotFound, "auth", "User not found")
	ErrJobNotFound         = New(CodeJobNotFound, "jobs", "Job not found")
	ErrApplicationNotFound = New(CodeApplicationNotFound, "jobs", "Application not found")

	ErrAlreadyApplied = New(CodeAlreadyApplied, "jobs", "You have already applied for this job")
)
