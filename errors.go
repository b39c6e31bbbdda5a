package client

import (
	"errors"

	"github.com/campusjam/campusjam-client/internal/types"
)

// Re-export shared SDK errors so callers compare against a single symbol.
var (
	ErrNotFound     = types.ErrNotFound
	ErrUnauthorized = types.ErrUnauthorized
	ErrConflict     = types.ErrConflict
)

// ErrConfirmationDeclined is returned when the user declines the
// confirmation prompt for a membership transition.
var ErrConfirmationDeclined = errors.New("confirmation declined")

// ErrHostMembership is returned when a join/leave is attempted for the
// session's host; hosts never transition membership.
var ErrHostMembership = errors.New("host cannot join or leave own session")

// IsConflict reports whether err is a server-state conflict, such as joining
// a session already joined.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
