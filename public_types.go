package client

import "github.com/campusjam/campusjam-client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Domain entities
	User             = types.User
	UserProfile      = types.UserProfile
	UserConnections  = types.UserConnections
	UserRef          = types.UserRef
	Message          = types.Message
	Conversation     = types.Conversation
	ConversationUser = types.ConversationUser
	LastMessage      = types.LastMessage
	Notification     = types.Notification
	Session          = types.Session
	CalendarEvent    = types.CalendarEvent
	CalendarTime     = types.CalendarTime

	// Requests
	LoginRequest             = types.LoginRequest
	SendDirectMessageRequest = types.SendDirectMessageRequest
	CreateSessionRequest     = types.CreateSessionRequest
	UpdateSessionRequest     = types.UpdateSessionRequest

	// Responses
	LoginResponse = types.LoginResponse
)
