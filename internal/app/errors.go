package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// ValidationFailed indicates option or target validation failed.
	ValidationFailed AppErrorType = iota
	// ScaffoldFailed indicates project file generation failed.
	ScaffoldFailed
	// TemplateFetchFailed indicates template fetching failed.
	TemplateFetchFailed
	// VersionResolveFailed indicates version resolution failed.
	VersionResolveFailed
	// BindFailed indicates wiring the resolved version into the project failed.
	BindFailed
)

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{Type: errType, Message: message, Cause: cause}
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}

// NewScaffoldError creates a scaffold error.
func NewScaffoldError(message string, cause error) *AppError {
	return NewAppError(ScaffoldFailed, message, cause)
}

// NewTemplateFetchError creates a template fetch error.
func NewTemplateFetchError(message string, cause error) *AppError {
	return NewAppError(TemplateFetchFailed, message, cause)
}

// NewVersionResolveError creates a version resolution error.
func NewVersionResolveError(message string, cause error) *AppError {
	return NewAppError(VersionResolveFailed, message, cause)
}

// NewBindError creates a version binding error.
func NewBindError(message string, cause error) *AppError {
	return NewAppError(BindFailed, message, cause)
}
