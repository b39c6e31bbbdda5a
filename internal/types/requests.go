package types

import "time"

// ------------------------------
// Request Payloads
// ------------------------------

// LoginRequest carries credentials for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SendDirectMessageRequest creates a direct message.
type SendDirectMessageRequest struct {
	RecipientID string `json:"recipientId"`
	Content     string `json:"content"`
}

// AddParticipantRequest adds a user to a session's attendee list.
type AddParticipantRequest struct {
	UserID string `json:"userId"`
}

// CreateSessionRequest creates a new jam session.
type CreateSessionRequest struct {
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	HostID            string     `json:"host"`
	StartTime         time.Time  `json:"startTime"`
	EndTime           *time.Time `json:"endTime,omitempty"`
	Location          string     `json:"location,omitempty"`
	Genre             string     `json:"genre,omitempty"`
	SkillLevel        string     `json:"skillLevel,omitempty"`
	InstrumentsNeeded []string   `json:"instrumentsNeeded,omitempty"`
	IsPublic          *bool      `json:"isPublic,omitempty"`
}

// UpdateSessionRequest carries a partial session update. Nil and zero fields
// are omitted so the backend only touches what was set.
type UpdateSessionRequest struct {
	Title             string     `json:"title,omitempty"`
	Description       string     `json:"description,omitempty"`
	StartTime         *time.Time `json:"startTime,omitempty"`
	EndTime           *time.Time `json:"endTime,omitempty"`
	Location          string     `json:"location,omitempty"`
	Genre             string     `json:"genre,omitempty"`
	SkillLevel        string     `json:"skillLevel,omitempty"`
	InstrumentsNeeded []string   `json:"instrumentsNeeded,omitempty"`
	IsPublic          *bool      `json:"isPublic,omitempty"`
}
