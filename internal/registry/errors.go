package registry

import "fmt"

// RegistryError is a package-registry metadata failure.
type RegistryError struct {
	// Package is the npm package the lookup was for.
	Package string
	// Message is the human-readable error message.
	Message string
	// StatusCode is the HTTP status code, when the error came from a response.
	StatusCode int
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *RegistryError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("registry error for package '%s': %s: %v", e.Package, msg, e.Cause)
	}
	return fmt.Sprintf("registry error for package '%s': %s", e.Package, msg)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *RegistryError) Unwrap() error {
	return e.Cause
}

// NewRegistryError creates a new RegistryError.
func NewRegistryError(pkg, message string, cause error) *RegistryError {
	return &RegistryError{Package: pkg, Message: message, Cause: cause}
}

// NewStatusError creates a RegistryError carrying an HTTP status code.
func NewStatusError(pkg string, status int) *RegistryError {
	return &RegistryError{Package: pkg, Message: "unexpected response status", StatusCode: status}
}
