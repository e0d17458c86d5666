package application

import (
	"errors"
	"strings"
)

// Request-scoped error kinds. Handlers map these onto HTTP statuses; none of
// them is fatal to the process.
var (
	// ErrInvalidCredentials covers bad email/password pairs. The message is
	// deliberately generic so account existence never leaks.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailNotVerified blocks login for sellers who have not completed
	// OTP verification yet.
	ErrEmailNotVerified = errors.New("email not verified")
	// ErrSessionMissing means the request lacks required session state
	// (e.g. verifying an OTP without a pending registration).
	ErrSessionMissing = errors.New("session state missing")
	// ErrInvalidOTP covers wrong, expired and already-used codes alike.
	ErrInvalidOTP = errors.New("invalid or expired OTP code")
	// ErrNotFound covers unknown ids and, identically, ids that exist but
	// are not approved, so pending listings are indistinguishable from
	// nonexistent ones.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the authenticated user may not act on the target.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError carries every failed check of a submission at once;
// validation never stops at the first bad field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fieldErrors accumulates field-level messages and produces a
// *ValidationError only if anything was recorded.
type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	if _, dup := f[field]; !dup {
		f[field] = msg
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

// Validation wraps a single field error into a ValidationError.
func Validation(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// AsValidation extracts a ValidationError, if err is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
