package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeCredentialRejected ErrorCode = "AUTH-001"
	ErrCodeMissingToken       ErrorCode = "AUTH-002"
	ErrCodeUnauthorized       ErrorCode = "AUTH-003"
	ErrCodeRefreshFailed      ErrorCode = "AUTH-004"

	// API errors (API-001 to API-099)
	ErrCodeAPIResponse ErrorCode = "API-001"
	ErrCodeAPIDecode   ErrorCode = "API-002"

	// Network errors (NET-001 to NET-099)
	ErrCodeNetwork ErrorCode = "NET-001"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeConfigNotFound ErrorCode = "IO-001"
	ErrCodeConfigInvalid  ErrorCode = "IO-002"
	ErrCodeFileWrite      ErrorCode = "IO-003"
)

// RentlyError represents an enhanced error with code, suggestions, and cause
type RentlyError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *RentlyError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *RentlyError) Unwrap() error {
	return e.Cause
}

// New creates a new RentlyError
func New(code ErrorCode, message string) *RentlyError {
	return &RentlyError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new RentlyError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *RentlyError {
	return &RentlyError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *RentlyError) WithSuggestion(suggestion string) *RentlyError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// Code extracts the error code from an error, or "" if it is not a RentlyError
func Code(err error) ErrorCode {
	var rerr *RentlyError
	if errors.As(err, &rerr) {
		return rerr.Code
	}
	return ""
}

// IsCredential reports whether the backend rejected the supplied credentials
func IsCredential(err error) bool {
	return Code(err) == ErrCodeCredentialRejected
}

// IsMissingToken reports whether a token-bearing response lacked a token field
func IsMissingToken(err error) bool {
	return Code(err) == ErrCodeMissingToken
}

// IsUnauthorized reports whether the backend refused the bearer token
func IsUnauthorized(err error) bool {
	return Code(err) == ErrCodeUnauthorized
}

// Common error constructors for frequently used errors

// NewCredentialRejectedError creates an error carrying the backend's rejection message
func NewCredentialRejectedError(message string) *RentlyError {
	if message == "" {
		message = "invalid email or password"
	}
	return New(ErrCodeCredentialRejected, message).
		WithSuggestion("Check your email and password").
		WithSuggestion("Use 'rently auth reset-password' if you forgot your password")
}

// NewMissingTokenError creates an error for a token-bearing response without a token.
// This indicates a backend contract violation, not wrong credentials.
func NewMissingTokenError(endpoint string) *RentlyError {
	return New(ErrCodeMissingToken, fmt.Sprintf("response from %s contains no access token", endpoint)).
		WithSuggestion("Verify the backend version matches this client").
		WithSuggestion("Check api.base_url in your configuration")
}

// NewUnauthorizedError creates an error for a request rejected even after refresh
func NewUnauthorizedError(path string) *RentlyError {
	return New(ErrCodeUnauthorized, fmt.Sprintf("request to %s was not authorized", path)).
		WithSuggestion("Run 'rently auth login' to start a new session")
}

// NewRefreshFailedError wraps a failed token refresh. The local session is
// cleared before this error is returned to the caller.
func NewRefreshFailedError(cause error) *RentlyError {
	return Wrap(ErrCodeRefreshFailed, "token refresh failed, session cleared", cause).
		WithSuggestion("Run 'rently auth login' to start a new session")
}

// NewAPIError creates an error from a backend error response body
func NewAPIError(status int, message string) *RentlyError {
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}
	return New(ErrCodeAPIResponse, message)
}

// NewNetworkError wraps a transport-level failure (timeout, DNS, refused)
func NewNetworkError(cause error) *RentlyError {
	return Wrap(ErrCodeNetwork, "request could not reach the backend", cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Run 'rently doctor' to verify backend reachability")
}

// NewConfigNotFoundError creates a config file not found error
func NewConfigNotFoundError(path string) *RentlyError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithSuggestion("Run 'rently config init' to create one")
}

// NewConfigInvalidError creates a config validation error
func NewConfigInvalidError(details string, cause error) *RentlyError {
	return Wrap(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", details), cause).
		WithSuggestion("Run 'rently config show' to inspect the loaded values")
}
