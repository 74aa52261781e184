package handler

import (
	"context"
	"log/slog"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/jmar008/dealaai/internal/domain"
	"github.com/jmar008/dealaai/internal/handler/dto"
)

// ChatHandler handles assistant chat requests.
type ChatHandler struct {
	usecase domain.ChatUsecase
	logger  *slog.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(usecase domain.ChatUsecase, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		usecase: usecase,
		logger:  logger,
	}
}

// SendMessage sends a user message to the assistant and returns the exchange.
// POST /api/v1/chat/messages
func (h *ChatHandler) SendMessage(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	var req dto.SendMessageRequest
	if err := c.BindJSON(&req); err != nil {
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	exchange, err := h.usecase.SendMessage(ctx, &domain.SendMessageRequest{
		UserID:         userID,
		ConversationID: req.ConversationID,
		Message:        req.Message,
	})
	if err != nil {
		h.logger.Error("chat message failed", "error", err, "user_id", userID)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToChatExchangeResponse(exchange))
}

// ListConversations returns the user's conversation summaries.
// GET /api/v1/chat/conversations
func (h *ChatHandler) ListConversations(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	conversations, err := h.usecase.ListConversations(ctx, userID)
	if err != nil {
		h.logger.Error("failed to list conversations", "error", err, "user_id", userID)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToConversationListResponse(conversations))
}

// GetConversation returns one conversation with its messages.
// GET /api/v1/chat/conversations/:id
func (h *ChatHandler) GetConversation(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	convID := c.Param("id")
	if convID == "" {
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	conversation, err := h.usecase.GetConversation(ctx, userID, convID)
	if err != nil {
		h.logger.Error("failed to get conversation", "error", err, "conversation_id", convID)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ToConversationResponse(conversation))
}

// DeleteConversation removes one conversation and its messages.
// DELETE /api/v1/chat/conversations/:id
func (h *ChatHandler) DeleteConversation(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	convID := c.Param("id")
	if convID == "" {
		ErrorResponse(c, domain.ErrInvalidInput)
		return
	}

	if err := h.usecase.DeleteConversation(ctx, userID, convID); err != nil {
		h.logger.Error("failed to delete conversation", "error", err, "conversation_id", convID)
		ErrorResponse(c, err)
		return
	}

	NoContentResponse(c)
}

// ClearAll removes all of the user's conversations.
// DELETE /api/v1/chat/conversations
func (h *ChatHandler) ClearAll(ctx context.Context, c *app.RequestContext) {
	userID := currentUserID(c)
	if userID == "" {
		ErrorResponse(c, domain.ErrUnauthorized)
		return
	}

	deleted, err := h.usecase.ClearAll(ctx, userID)
	if err != nil {
		h.logger.Error("failed to clear conversations", "error", err, "user_id", userID)
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, dto.ClearChatResponse{Deleted: deleted})
}
