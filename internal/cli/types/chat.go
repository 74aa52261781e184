package types

// SendMessageRequest is the chat message payload.
type SendMessageRequest struct {
	ConversationID string `json:"conversation_id,omitempty"`
	Message        string `json:"message"`
}

// ChatMessage is one message in a conversation.
type ChatMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// ChatExchange carries both sides of a chat round trip.
type ChatExchange struct {
	ConversationID string       `json:"conversation_id"`
	UserMessage    *ChatMessage `json:"user_message"`
	Reply          *ChatMessage `json:"reply"`
	TokensUsed     int          `json:"tokens_used,omitempty"`
	Model          string       `json:"model,omitempty"`
}

// Conversation is a conversation summary, with messages when loaded.
type Conversation struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	MessageCount int           `json:"message_count"`
	Messages     []ChatMessage `json:"messages,omitempty"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
}

// ConversationList lists conversation summaries.
type ConversationList struct {
	Conversations []Conversation `json:"conversations"`
	Total         int            `json:"total"`
}

// ClearChatResult reports how many conversations were removed.
type ClearChatResult struct {
	Deleted int `json:"deleted"`
}
