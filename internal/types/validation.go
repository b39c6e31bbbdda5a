package types

import (
	"errors"
	"fmt"
	"strings"
)

// ------------------------------
// Shared Errors
// ------------------------------

// ErrNotFound is returned when the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized is returned when the backend rejects the bearer token.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict is returned when a mutation conflicts with server state, for
// example joining a session the user already attends.
var ErrConflict = errors.New("conflict")

// ------------------------------
// Validation Helpers
// ------------------------------

// ValidateIDPresent rejects empty identifiers before any HTTP round trip.
func ValidateIDPresent(id, field string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// ValidateContent rejects empty message content.
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}

// ValidateCredentials rejects incomplete login requests.
func ValidateCredentials(req LoginRequest) error {
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if req.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}
