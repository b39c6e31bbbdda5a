package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// mirrorTolerance is the window within which a calendar event's start is
// considered the same occurrence as a session's start.
const mirrorTolerance = 5 * time.Minute

// eventMatchesSession reports whether ev looks like a mirror of s: titles
// equal after trimming, ignoring case, and starts within the tolerance
// window. Events whose start cannot be parsed never match.
func eventMatchesSession(ev CalendarEvent, s *Session) bool {
	if !strings.EqualFold(strings.TrimSpace(ev.Summary), strings.TrimSpace(s.Title)) {
		return false
	}
	start, err := ev.Start.Resolve()
	if err != nil {
		return false
	}
	d := start.Sub(s.StartTime)
	if d < 0 {
		d = -d
	}
	return d <= mirrorTolerance
}

// CalendarMirror decides whether a session already exists in the user's
// external calendar, so the UI can avoid offering a duplicate "add" action.
//
// The match is a heuristic: no external event ID is persisted against the
// session, so a miss degrades to a possible duplicate calendar entry and an
// over-match to a missing "add" action. Neither is fatal.
type CalendarMirror struct {
	api *Client
	log zerolog.Logger

	mu       sync.Mutex
	mirrored map[string]bool
}

// NewCalendarMirror constructs the matcher. State is transient per view:
// callers Check on every view load.
func NewCalendarMirror(api *Client, logger zerolog.Logger) *CalendarMirror {
	return &CalendarMirror{
		api:      api,
		log:      logger.With().Str("component", "calendar").Logger(),
		mirrored: make(map[string]bool),
	}
}

// Check fetches the user's calendar events and records whether s appears
// mirrored.
func (c *CalendarMirror) Check(ctx context.Context, s *Session) (bool, error) {
	events, err := c.api.ListCalendarEvents(ctx)
	if err != nil {
		return false, err
	}

	found := false
	for _, ev := range events {
		if eventMatchesSession(ev, s) {
			found = true
			break
		}
	}
	c.set(s.ID, found)
	return found, nil
}

// Add mirrors s into the external calendar. The state flips to mirrored
// optimistically, without waiting for a recheck, and reverts if the request
// fails.
func (c *CalendarMirror) Add(ctx context.Context, s *Session) error {
	prev := c.Mirrored(s.ID)
	c.set(s.ID, true)
	if err := c.api.AddSessionToCalendar(ctx, s.ID); err != nil {
		c.set(s.ID, prev)
		c.log.Warn().Err(err).Str("session_id", s.ID).Msg("calendar add failed")
		return err
	}
	c.log.Info().Str("session_id", s.ID).Msg("session mirrored to calendar")
	return nil
}

// Mirrored reports the last known mirror state for sessionID.
func (c *CalendarMirror) Mirrored(sessionID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mirrored[sessionID]
}

func (c *CalendarMirror) set(sessionID string, v bool) {
	c.mu.Lock()
	c.mirrored[sessionID] = v
	c.mu.Unlock()
}
