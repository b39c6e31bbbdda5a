// Package errors provides error classification for the client SDK.
// The realtime layer uses the category to decide whether a failed
// connection attempt is worth retrying.
package errors

import (
	"fmt"

	"github.com/campusjam/campusjam-client/internal/types"
)

// ErrorCategory determines how errors should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors may be retried with exponential backoff.
	// Examples: 500 Internal Server Error, network timeouts.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors fail immediately without retry.
	// Examples: 401 Unauthorized, 403 Forbidden, 400 Bad Request.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// StatusError is an HTTP failure carrying the backend's message body and a
// retry category.
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
	Category   ErrorCategory
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
}

// Unwrap maps well-known statuses onto shared sentinels so callers can use
// errors.Is without inspecting codes.
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case 401, 403:
		return types.ErrUnauthorized
	case 404:
		return types.ErrNotFound
	case 409:
		return types.ErrConflict
	}
	return nil
}

// IsIrrecoverable reports whether err should not be retried.
func IsIrrecoverable(err error) bool {
	if se, ok := err.(*StatusError); ok {
		return se.Category == Irrecoverable
	}
	return false
}
