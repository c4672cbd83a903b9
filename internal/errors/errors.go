// Package errors provides custom error types for askbox.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrMethodNotAllowed      = errors.New("method not allowed")
	ErrNotConfigured         = errors.New("api key not configured")
	ErrCredentialUnavailable = errors.New("api key not available")
	ErrCompletionFailed      = errors.New("completion request failed")
	ErrBusy                  = errors.New("a request is already in flight")
)

// Kind tells apart the ways an outbound HTTP exchange can fail.
type Kind int

const (
	// KindTransport means the request never produced a response.
	KindTransport Kind = iota
	// KindStatus means the endpoint answered with a non-2xx status.
	KindStatus
	// KindShape means the body did not hold the expected field.
	KindShape
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindShape:
		return "shape"
	default:
		return "unknown"
	}
}

// CompletionError represents a failed call to the completion endpoint
type CompletionError struct {
	Kind       Kind
	StatusCode int
	Endpoint   string
	Message    string
	Cause      error
}

func (e *CompletionError) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("completion %s error [%d] at %s: %s", e.Kind, e.StatusCode, e.Endpoint, msg)
	}
	return fmt.Sprintf("completion %s error at %s: %s", e.Kind, e.Endpoint, msg)
}

// Unwrap returns the underlying cause
func (e *CompletionError) Unwrap() error {
	return e.Cause
}

// Is allows comparison with sentinel errors
func (e *CompletionError) Is(target error) bool {
	if target == ErrCompletionFailed {
		return true
	}
	_, ok := target.(*CompletionError)
	return ok
}

// NewTransportError creates a CompletionError for a request that got no response
func NewTransportError(endpoint string, cause error) *CompletionError {
	return &CompletionError{Kind: KindTransport, Endpoint: endpoint, Cause: cause}
}

// NewStatusError creates a CompletionError for a non-2xx response
func NewStatusError(endpoint string, statusCode int, body string) *CompletionError {
	return &CompletionError{Kind: KindStatus, Endpoint: endpoint, StatusCode: statusCode, Message: body}
}

// NewShapeError creates a CompletionError for a body missing the reply field
func NewShapeError(endpoint, message string) *CompletionError {
	return &CompletionError{Kind: KindShape, Endpoint: endpoint, Message: message}
}

// CredentialFetchError represents a failed call to the credential endpoint.
// It never reaches the user; the session logs it and tries the local fallback.
type CredentialFetchError struct {
	Kind       Kind
	StatusCode int
	Endpoint   string
	Message    string
	Cause      error
}

func (e *CredentialFetchError) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("credential fetch %s error [%d] at %s: %s", e.Kind, e.StatusCode, e.Endpoint, msg)
	}
	return fmt.Sprintf("credential fetch %s error at %s: %s", e.Kind, e.Endpoint, msg)
}

// Unwrap returns the underlying cause
func (e *CredentialFetchError) Unwrap() error {
	return e.Cause
}

// NewCredentialFetchError creates a new CredentialFetchError
func NewCredentialFetchError(kind Kind, endpoint string, statusCode int, message string, cause error) *CredentialFetchError {
	return &CredentialFetchError{
		Kind:       kind,
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
		Cause:      cause,
	}
}

// kindOf extracts the failure kind from either typed error
func kindOf(err error) (Kind, bool) {
	var ce *CompletionError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	var fe *CredentialFetchError
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return 0, false
}

// IsTransport reports whether err is a transport failure
func IsTransport(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindTransport
}

// IsStatus reports whether err is a non-2xx status failure
func IsStatus(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindStatus
}

// IsShape reports whether err is a malformed-body failure
func IsShape(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindShape
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var ce *CompletionError
	if errors.As(err, &ce) {
		return ce.StatusCode
	}
	var fe *CredentialFetchError
	if errors.As(err, &fe) {
		return fe.StatusCode
	}
	return 0
}
