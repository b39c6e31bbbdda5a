// Package client is the CampusJam platform SDK: an authorized HTTP client,
// authentication session management, a realtime connection bound to the
// authenticated identity, and the stateful controllers front ends build on
// (inbox merging, notification polling, session membership, calendar
// reconciliation).
package client

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campusjam/campusjam-client/internal/api"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client performs REST calls against the backend, attaching the current
// bearer token to every request. It is pure infrastructure: no retry, no
// backoff; a failed call surfaces its error to the caller unmodified.
//
// The token is pushed by an AuthManager on login/logout rather than pulled
// per request.
type Client struct {
	baseURL string
	http    *http.Client
	bearer  *bearerTransport
}

// New constructs a Client for the given base URL (scheme://host, without the
// /api prefix). Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}

	c.wrapTransportWithBearer()
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// wrapTransportWithBearer installs the transport that stamps the
// Authorization header and a request correlation ID on every call.
func (c *Client) wrapTransportWithBearer() {
	baseTransport := c.http.Transport
	if baseTransport == nil {
		baseTransport = http.DefaultTransport
	}
	c.bearer = &bearerTransport{base: baseTransport}
	c.http.Transport = c.bearer
}

// setToken makes every subsequent request carry the bearer token. Called by
// AuthManager on login and successful restore.
func (c *Client) setToken(tok string) { c.bearer.set(tok) }

// clearToken removes the default Authorization header. A stale header must
// be proactively cleared on logout.
func (c *Client) clearToken() { c.bearer.set("") }

// bearerTransport wraps an http.RoundTripper to attach the current bearer
// token and an X-Request-Id to outbound requests.
type bearerTransport struct {
	base http.RoundTripper

	mu    sync.RWMutex
	token string
}

func (t *bearerTransport) set(tok string) {
	t.mu.Lock()
	t.token = tok
	t.mu.Unlock()
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mu.RLock()
	tok := t.token
	t.mu.RUnlock()

	// Clone the request to avoid modifying the original.
	cloned := req.Clone(req.Context())
	if tok != "" {
		cloned.Header.Set("Authorization", "Bearer "+tok)
	}
	cloned.Header.Set("X-Request-Id", uuid.NewString())
	return t.base.RoundTrip(cloned)
}

// --------------------------------------------------------------------
// Auth operations - delegated to internal/api
// --------------------------------------------------------------------

// Login exchanges credentials for a token and user. It does not alter client
// state; use AuthManager.Login with the result to establish a session.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	return api.Login(ctx, c.http, c.baseURL, req)
}

// GetUser fetches a user profile by ID.
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	return api.GetUser(ctx, c.http, c.baseURL, userID)
}

// --------------------------------------------------------------------
// Messaging operations - delegated to internal/api
// --------------------------------------------------------------------

// ListConversations fetches the conversation summaries for the current user.
func (c *Client) ListConversations(ctx context.Context) ([]Conversation, error) {
	return api.ListConversations(ctx, c.http, c.baseURL)
}

// ListDirectMessages fetches the message history with another user.
func (c *Client) ListDirectMessages(ctx context.Context, otherUserID string) ([]Message, error) {
	return api.ListDirectMessages(ctx, c.http, c.baseURL, otherUserID)
}

// SendDirectMessage sends a direct message.
func (c *Client) SendDirectMessage(ctx context.Context, req SendDirectMessageRequest) (*Message, error) {
	return api.SendDirectMessage(ctx, c.http, c.baseURL, req)
}

// MarkConversationRead marks all messages from senderID as read.
func (c *Client) MarkConversationRead(ctx context.Context, senderID string) error {
	return api.MarkConversationRead(ctx, c.http, c.baseURL, senderID)
}

// --------------------------------------------------------------------
// Notification operations - delegated to internal/api
// --------------------------------------------------------------------

// ListNotifications fetches all notifications for the current user.
func (c *Client) ListNotifications(ctx context.Context) ([]Notification, error) {
	return api.ListNotifications(ctx, c.http, c.baseURL)
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return api.MarkNotificationRead(ctx, c.http, c.baseURL, notificationID)
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return api.MarkAllNotificationsRead(ctx, c.http, c.baseURL)
}

// --------------------------------------------------------------------
// Session operations - delegated to internal/api
// --------------------------------------------------------------------

// ListSessions fetches all public sessions.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	return api.ListSessions(ctx, c.http, c.baseURL)
}

// ListUpcomingSessions fetches scheduled sessions starting now or later.
func (c *Client) ListUpcomingSessions(ctx context.Context) ([]Session, error) {
	return api.ListUpcomingSessions(ctx, c.http, c.baseURL)
}

// ListActiveSessions fetches sessions currently ongoing.
func (c *Client) ListActiveSessions(ctx context.Context) ([]Session, error) {
	return api.ListActiveSessions(ctx, c.http, c.baseURL)
}

// ListPastSessions fetches finished sessions.
func (c *Client) ListPastSessions(ctx context.Context) ([]Session, error) {
	return api.ListPastSessions(ctx, c.http, c.baseURL)
}

// GetSession fetches a session with host and attendees populated.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	return api.GetSession(ctx, c.http, c.baseURL, sessionID)
}

// CreateSession creates a new session.
func (c *Client) CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	return api.CreateSession(ctx, c.http, c.baseURL, req)
}

// UpdateSession applies a partial update to a session.
func (c *Client) UpdateSession(ctx context.Context, sessionID string, req UpdateSessionRequest) (*Session, error) {
	return api.UpdateSession(ctx, c.http, c.baseURL, sessionID, req)
}

// DeleteSession removes a session.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return api.DeleteSession(ctx, c.http, c.baseURL, sessionID)
}

// CompleteSession marks a session as finished.
func (c *Client) CompleteSession(ctx context.Context, sessionID string) (*Session, error) {
	return api.CompleteSession(ctx, c.http, c.baseURL, sessionID)
}

// AddParticipant adds a user to a session's attendee list.
func (c *Client) AddParticipant(ctx context.Context, sessionID, userID string) ([]string, error) {
	return api.AddParticipant(ctx, c.http, c.baseURL, sessionID, userID)
}

// RemoveParticipant removes a user from a session's attendee list.
func (c *Client) RemoveParticipant(ctx context.Context, sessionID, userID string) ([]string, error) {
	return api.RemoveParticipant(ctx, c.http, c.baseURL, sessionID, userID)
}

// --------------------------------------------------------------------
// Calendar operations - delegated to internal/api
// --------------------------------------------------------------------

// ListCalendarEvents fetches the user's external calendar events.
func (c *Client) ListCalendarEvents(ctx context.Context) ([]CalendarEvent, error) {
	return api.ListCalendarEvents(ctx, c.http, c.baseURL)
}

// AddSessionToCalendar mirrors a session into the user's external calendar.
func (c *Client) AddSessionToCalendar(ctx context.Context, sessionID string) error {
	return api.AddSessionToCalendar(ctx, c.http, c.baseURL, sessionID)
}
