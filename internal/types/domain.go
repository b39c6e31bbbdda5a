package types

import (
	"encoding/json"
	"time"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// User represents a platform user as served by the backend.
type User struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Campus      string          `json:"campus,omitempty"`
	Profile     UserProfile     `json:"profile"`
	Connections UserConnections `json:"connections"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// UserProfile is the musician profile sub-document.
type UserProfile struct {
	Instruments []string `json:"instruments,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	SkillLevel  string   `json:"skillLevel,omitempty"`
	Bio         string   `json:"bio,omitempty"`
}

// UserConnections holds the social graph edges by user ID.
type UserConnections struct {
	Following []string `json:"following,omitempty"`
	Followers []string `json:"followers,omitempty"`
}

// UserRef is a reference to a user that the backend serializes either as a
// bare ID string or as a populated object, depending on the endpoint.
type UserRef struct {
	ID    string
	Name  string
	Email string
}

// UnmarshalJSON accepts both encodings.
func (r *UserRef) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &r.ID)
	}
	var obj struct {
		ID    string `json:"_id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	r.ID = obj.ID
	r.Name = obj.Name
	r.Email = obj.Email
	return nil
}

// MarshalJSON writes the bare ID form; the populated form is only ever
// produced by the server.
func (r UserRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// Message is a direct or session message. Immutable once created apart from
// the read flag.
type Message struct {
	ID        string    `json:"_id"`
	Sender    UserRef   `json:"sender"`
	Recipient string    `json:"recipient,omitempty"`
	SessionID string    `json:"session,omitempty"`
	Content   string    `json:"content"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// ConversationUser is the minimal identity of the other party in a
// conversation listing.
type ConversationUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LastMessage summarizes the most recent message of a conversation.
type LastMessage struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
	Sender    string    `json:"sender"`
}

// Conversation is one entry of the inbox listing. At most one exists per
// distinct other user.
type Conversation struct {
	OtherUser   ConversationUser `json:"otherUser"`
	LastMessage LastMessage      `json:"lastMessage"`
}

// Notification is a server-generated notice for the current user.
type Notification struct {
	ID        string    `json:"_id"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
	Sender    UserRef   `json:"sender"`
}

// Session is a jam session with a populated host and attendee list.
type Session struct {
	ID                string     `json:"_id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	Host              User       `json:"host"`
	IsPublic          bool       `json:"isPublic"`
	Status            string     `json:"status"`
	StartTime         time.Time  `json:"startTime"`
	EndTime           *time.Time `json:"endTime,omitempty"`
	Location          string     `json:"location,omitempty"`
	Genre             string     `json:"genre,omitempty"`
	SkillLevel        string     `json:"skillLevel,omitempty"`
	InstrumentsNeeded []string   `json:"instrumentsNeeded,omitempty"`
	Attendees         []User     `json:"attendees"`
}

// CalendarTime is the Google-style event time: dateTime for timed events,
// date for all-day events.
type CalendarTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

// Resolve returns the effective instant of the event boundary.
func (t CalendarTime) Resolve() (time.Time, error) {
	if t.DateTime != "" {
		return time.Parse(time.RFC3339, t.DateTime)
	}
	return time.Parse("2006-01-02", t.Date)
}

// CalendarEvent is an event from the user's external calendar.
type CalendarEvent struct {
	ID      string       `json:"id"`
	Summary string       `json:"summary"`
	Start   CalendarTime `json:"start"`
	End     CalendarTime `json:"end"`
}
