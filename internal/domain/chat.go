package domain

import (
	"context"

	"github.com/jmar008/dealaai/internal/domain/entity"
)

// SendMessageRequest is the usecase-level chat input.
type SendMessageRequest struct {
	UserID         string
	ConversationID string // empty starts a new conversation
	Message        string
}

// ChatExchange is the pair of persisted messages produced by one send.
type ChatExchange struct {
	ConversationID   string
	UserMessage      *entity.Message
	AssistantMessage *entity.Message
	TokensUsed       int
}

// AssistantReply is what the assistant backend returned for one completion.
type AssistantReply struct {
	Content    string
	TokensUsed int
	Model      string
}

// AssistantClient talks to the LLM assistant backend.
type AssistantClient interface {
	// Complete sends the conversation history and returns the reply.
	Complete(ctx context.Context, messages []*entity.Message) (*AssistantReply, error)
}

// ChatRepository is the conversation persistence boundary.
type ChatRepository interface {
	CreateConversation(ctx context.Context, userID, title string) (*entity.Conversation, error)

	// GetConversation returns the conversation with its messages, checking
	// ownership against userID.
	GetConversation(ctx context.Context, userID, conversationID string) (*entity.Conversation, error)

	ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error)

	AppendMessage(ctx context.Context, msg *entity.Message) (*entity.Message, error)

	DeleteConversation(ctx context.Context, userID, conversationID string) error

	// DeleteAll removes every conversation owned by userID and returns the count.
	DeleteAll(ctx context.Context, userID string) (int, error)
}

// ChatUsecase is the chat business logic.
type ChatUsecase interface {
	// SendMessage persists the user message, asks the assistant for a reply
	// and persists that too. An empty ConversationID starts a new
	// conversation titled after the first message.
	SendMessage(ctx context.Context, req *SendMessageRequest) (*ChatExchange, error)

	ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error)

	GetConversation(ctx context.Context, userID, conversationID string) (*entity.Conversation, error)

	DeleteConversation(ctx context.Context, userID, conversationID string) error

	// ClearAll deletes all of the user's conversations.
	ClearAll(ctx context.Context, userID string) (int, error)
}
