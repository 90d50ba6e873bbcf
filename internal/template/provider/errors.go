package provider

import "fmt"

// ProviderErrorType classifies provider errors.
type ProviderErrorType int

const (
	// FetchFailed indicates the template or file could not be fetched.
	FetchFailed ProviderErrorType = iota
	// NotFound indicates the remote reported the target missing (404).
	NotFound
	// InvalidSpec indicates the template spec could not be normalized.
	InvalidSpec
	// RedirectExceeded indicates the redirect budget was exhausted.
	RedirectExceeded
)

// String returns the string representation of the error type.
func (t ProviderErrorType) String() string {
	switch t {
	case FetchFailed:
		return "FetchFailed"
	case NotFound:
		return "NotFound"
	case InvalidSpec:
		return "InvalidSpec"
	case RedirectExceeded:
		return "RedirectExceeded"
	default:
		return "Unknown"
	}
}

// ProviderError is a provider-specific error with the template spec or URL that
// produced it and, for HTTP failures, the offending status code.
type ProviderError struct {
	// Type is the error type classification.
	Type ProviderErrorType
	// Message is the human-readable error message.
	Message string
	// Provider is the provider name (e.g., "git", "github").
	Provider string
	// URL is the template spec or URL that caused the error.
	URL string
	// StatusCode is the HTTP status code, when the error came from a response.
	StatusCode int
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s provider error [%s] for '%s': %s (caused by: %v)",
			e.Provider, e.Type.String(), e.URL, msg, e.Cause)
	}
	return fmt.Sprintf("%s provider error [%s] for '%s': %s",
		e.Provider, e.Type.String(), e.URL, msg)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// NewProviderError creates a new ProviderError.
func NewProviderError(typ ProviderErrorType, provider, url, message string, cause error) *ProviderError {
	return &ProviderError{
		Type:     typ,
		Message:  message,
		Provider: provider,
		URL:      url,
		Cause:    cause,
	}
}

// NewFetchError creates a fetch failed error.
func NewFetchError(provider, url string, cause error) *ProviderError {
	return NewProviderError(FetchFailed, provider, url, "failed to fetch", cause)
}

// NewStatusError creates a fetch failed error carrying an HTTP status code.
func NewStatusError(provider, url string, status int) *ProviderError {
	e := NewProviderError(FetchFailed, provider, url, "unexpected response status", nil)
	e.StatusCode = status
	return e
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(provider, url string) *ProviderError {
	e := NewProviderError(NotFound, provider, url, "not found", nil)
	e.StatusCode = 404
	return e
}

// NewInvalidSpecError creates an invalid spec error.
func NewInvalidSpecError(provider, spec string, cause error) *ProviderError {
	return NewProviderError(InvalidSpec, provider, spec, "not a recognized GitHub template spec", cause)
}

// NewRedirectError creates a redirect budget exceeded error.
func NewRedirectError(provider, url string, hops int) *ProviderError {
	return NewProviderError(RedirectExceeded, provider, url,
		fmt.Sprintf("redirect budget exceeded after %d hops", hops), nil)
}
