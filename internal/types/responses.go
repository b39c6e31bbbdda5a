package types

// ------------------------------
// Response Envelopes
// ------------------------------
// The backend wraps most payloads in a {message, ...} envelope.

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// ConversationsResponse is returned by GET /messages/conversations.
type ConversationsResponse struct {
	Message       string         `json:"message"`
	Conversations []Conversation `json:"conversations"`
}

// MessagesResponse is returned by the direct-message history endpoint.
type MessagesResponse struct {
	Message  string    `json:"message"`
	Messages []Message `json:"messages"`
}

// SendMessageResponse is returned after sending a message.
type SendMessageResponse struct {
	Message string  `json:"message"`
	Data    Message `json:"data"`
}

// ParticipantsResponse is returned by participant mutations. Attendees are
// bare user IDs; callers needing populated users refetch the session.
type ParticipantsResponse struct {
	Message   string   `json:"message"`
	Attendees []string `json:"attendees"`
}

// SessionResponse wraps a session returned by create/update/complete.
type SessionResponse struct {
	Message string  `json:"message"`
	Session Session `json:"session"`
}

// ErrorResponse is the backend's error body.
type ErrorResponse struct {
	Message string `json:"message"`
}
