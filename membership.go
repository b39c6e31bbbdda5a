package client

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Role is a user's membership in a session, derived per view from the
// session's host and attendee IDs, never stored.
type Role int

const (
	RoleNone Role = iota
	RoleAttendee
	RoleHost
)

func (r Role) String() string {
	switch r {
	case RoleAttendee:
		return "attendee"
	case RoleHost:
		return "host"
	default:
		return "none"
	}
}

// RoleOf derives userID's membership in s. Host is disjoint: a host is never
// also an attendee.
func RoleOf(s *Session, userID string) Role {
	if s.Host.ID == userID {
		return RoleHost
	}
	for _, a := range s.Attendees {
		if a.ID == userID {
			return RoleAttendee
		}
	}
	return RoleNone
}

// ConfirmFunc asks the user to confirm a membership transition. Returning
// false aborts it.
type ConfirmFunc func(prompt string) bool

// Membership mediates join/leave transitions for a session: explicit
// confirmation, the mutation request, then a full refetch. The attendee list
// is never spliced locally; concurrent joins/leaves by other users make the
// server's view the only trustworthy one.
type Membership struct {
	api     *Client
	confirm ConfirmFunc
	log     zerolog.Logger
}

// NewMembership constructs the controller. A nil confirm auto-confirms,
// for programmatic callers that gather consent elsewhere.
func NewMembership(api *Client, confirm ConfirmFunc, logger zerolog.Logger) *Membership {
	return &Membership{
		api:     api,
		confirm: confirm,
		log:     logger.With().Str("component", "membership").Logger(),
	}
}

// Join adds userID to s's attendees and returns the refetched session. On
// any failure the caller's membership state is unchanged and s remains the
// view to render.
func (m *Membership) Join(ctx context.Context, s *Session, userID string) (*Session, error) {
	switch RoleOf(s, userID) {
	case RoleHost:
		return nil, ErrHostMembership
	case RoleAttendee:
		return nil, fmt.Errorf("already attending %q: %w", s.Title, ErrConflict)
	}

	if !m.confirmed(fmt.Sprintf("Join session %q?", s.Title)) {
		return nil, ErrConfirmationDeclined
	}

	if _, err := m.api.AddParticipant(ctx, s.ID, userID); err != nil {
		m.log.Warn().Err(err).Str("session_id", s.ID).Msg("join failed")
		return nil, err
	}
	m.log.Info().Str("session_id", s.ID).Str("user_id", userID).Msg("joined session")

	// Refetch picks up server-computed side effects such as capacity limits.
	return m.api.GetSession(ctx, s.ID)
}

// Leave removes userID from s's attendees and returns the refetched session.
func (m *Membership) Leave(ctx context.Context, s *Session, userID string) (*Session, error) {
	switch RoleOf(s, userID) {
	case RoleHost:
		return nil, ErrHostMembership
	case RoleNone:
		return nil, fmt.Errorf("not attending %q: %w", s.Title, ErrConflict)
	}

	if !m.confirmed(fmt.Sprintf("Leave session %q?", s.Title)) {
		return nil, ErrConfirmationDeclined
	}

	if _, err := m.api.RemoveParticipant(ctx, s.ID, userID); err != nil {
		m.log.Warn().Err(err).Str("session_id", s.ID).Msg("leave failed")
		return nil, err
	}
	m.log.Info().Str("session_id", s.ID).Str("user_id", userID).Msg("left session")

	return m.api.GetSession(ctx, s.ID)
}

func (m *Membership) confirmed(prompt string) bool {
	if m.confirm == nil {
		return true
	}
	return m.confirm(prompt)
}
