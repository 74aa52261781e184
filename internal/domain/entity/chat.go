package entity

import "time"

// Message roles, as stored and as sent to the assistant backend.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single chat message. Messages are immutable once created;
// ordering is insertion order.
type Message struct {
	ID             string
	ConversationID string
	Role           string
	Content        string
	TokensUsed     int
	ModelUsed      string
	CreatedAt      time.Time
}

// Conversation is a chat thread owned by one user.
type Conversation struct {
	ID           string
	UserID       string
	Title        string
	Active       bool
	MessageCount int
	Messages     []*Message
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
