package dto

import (
	"time"

	"github.com/jmar008/dealaai/internal/domain"
	"github.com/jmar008/dealaai/internal/domain/entity"
)

// SendMessageRequest is the chat message payload.
type SendMessageRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message" binding:"required"`
}

// MessageResponse is one chat message on the wire.
type MessageResponse struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// ChatExchangeResponse carries both sides of a chat round trip.
type ChatExchangeResponse struct {
	ConversationID string           `json:"conversation_id"`
	UserMessage    *MessageResponse `json:"user_message"`
	Reply          *MessageResponse `json:"reply"`
	TokensUsed     int              `json:"tokens_used,omitempty"`
	Model          string           `json:"model,omitempty"`
}

// ConversationResponse is the conversation summary wire form.
type ConversationResponse struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	MessageCount int                `json:"message_count"`
	Messages     []*MessageResponse `json:"messages,omitempty"`
	CreatedAt    string             `json:"created_at"`
	UpdatedAt    string             `json:"updated_at"`
}

// ConversationListResponse lists conversations.
type ConversationListResponse struct {
	Conversations []*ConversationResponse `json:"conversations"`
	Total         int                     `json:"total"`
}

// ClearChatResponse reports how many conversations were removed.
type ClearChatResponse struct {
	Deleted int `json:"deleted"`
}

// ToMessageResponse converts entity.Message to its wire form.
func ToMessageResponse(msg *entity.Message) *MessageResponse {
	if msg == nil {
		return nil
	}
	return &MessageResponse{
		ID:        msg.ID,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt.Format(time.RFC3339),
	}
}

// ToChatExchangeResponse converts a domain exchange to its wire form.
func ToChatExchangeResponse(exchange *domain.ChatExchange) *ChatExchangeResponse {
	resp := &ChatExchangeResponse{
		ConversationID: exchange.ConversationID,
		UserMessage:    ToMessageResponse(exchange.UserMessage),
		Reply:          ToMessageResponse(exchange.AssistantMessage),
		TokensUsed:     exchange.TokensUsed,
	}
	if exchange.AssistantMessage != nil {
		resp.Model = exchange.AssistantMessage.ModelUsed
	}
	return resp
}

// ToConversationResponse converts entity.Conversation to its wire form,
// including messages when loaded.
func ToConversationResponse(conv *entity.Conversation) *ConversationResponse {
	resp := &ConversationResponse{
		ID:           conv.ID,
		Title:        conv.Title,
		MessageCount: conv.MessageCount,
		CreatedAt:    conv.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    conv.UpdatedAt.Format(time.RFC3339),
	}

	if len(conv.Messages) > 0 {
		resp.Messages = make([]*MessageResponse, len(conv.Messages))
		for i, msg := range conv.Messages {
			resp.Messages[i] = ToMessageResponse(msg)
		}
	}

	return resp
}

// ToConversationListResponse converts conversation summaries to their wire form.
func ToConversationListResponse(convs []*entity.Conversation) *ConversationListResponse {
	conversations := make([]*ConversationResponse, len(convs))
	for i, conv := range convs {
		conversations[i] = ToConversationResponse(conv)
	}

	return &ConversationListResponse{
		Conversations: conversations,
		Total:         len(conversations),
	}
}
