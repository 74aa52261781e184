package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jmar008/dealaai/internal/domain"
	"github.com/jmar008/dealaai/internal/domain/entity"
)

// maxTitleLength bounds auto-generated conversation titles.
const maxTitleLength = 50

type chatUsecase struct {
	assistant domain.AssistantClient
	chatRepo  domain.ChatRepository
	userRepo  domain.UserRepository
	stockRepo domain.StockRepository
	logger    *slog.Logger
}

// NewChatUsecase creates the chat usecase. The user repository is used to
// reject sends from unknown users and from accounts with chat disabled; the
// stock repository feeds the assistant a current stock summary.
func NewChatUsecase(
	assistant domain.AssistantClient,
	chatRepo domain.ChatRepository,
	userRepo domain.UserRepository,
	stockRepo domain.StockRepository,
	logger *slog.Logger,
) domain.ChatUsecase {
	return &chatUsecase{
		assistant: assistant,
		chatRepo:  chatRepo,
		userRepo:  userRepo,
		stockRepo: stockRepo,
		logger:    logger,
	}
}

func (u *chatUsecase) SendMessage(ctx context.Context, req *domain.SendMessageRequest) (*domain.ChatExchange, error) {
	if req == nil || strings.TrimSpace(req.Message) == "" {
		return nil, domain.NewInvalidInputError("message is required")
	}
	if req.UserID == "" {
		return nil, domain.NewInvalidInputError("user id is required")
	}

	user, err := u.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found or invalid: %w", err)
	}
	if !user.ChatEnabled {
		return nil, domain.NewForbiddenError("chat is disabled for this account")
	}

	conv, err := u.resolveConversation(ctx, req)
	if err != nil {
		return nil, err
	}

	userMsg, err := u.chatRepo.AppendMessage(ctx, &entity.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		Role:           entity.RoleUser,
		Content:        req.Message,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store user message: %w", err)
	}

	history := conv.Messages
	if stockCtx := u.stockContext(ctx); stockCtx != nil {
		history = append([]*entity.Message{stockCtx}, history...)
	}
	history = append(history, userMsg)
	reply, err := u.assistant.Complete(ctx, history)
	if err != nil {
		return nil, fmt.Errorf("assistant completion failed: %w", err)
	}

	assistantMsg, err := u.chatRepo.AppendMessage(ctx, &entity.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		Role:           entity.RoleAssistant,
		Content:        reply.Content,
		TokensUsed:     reply.TokensUsed,
		ModelUsed:      reply.Model,
		CreatedAt:      time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store assistant message: %w", err)
	}

	return &domain.ChatExchange{
		ConversationID:   conv.ID,
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
		TokensUsed:       reply.TokensUsed,
	}, nil
}

// stockContext summarizes the current stock as a system message so the
// assistant can answer inventory questions. Failures are logged and the
// message is skipped; chat must keep working without it.
func (u *chatUsecase) stockContext(ctx context.Context) *entity.Message {
	if u.stockRepo == nil {
		return nil
	}
	stats, err := u.stockRepo.Stats(ctx)
	if err != nil {
		u.logger.Warn("stock stats unavailable for chat context", "error", err)
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Current dealership stock: %d vehicles (%d available, %d reserved).",
		stats.Total, stats.Available, stats.Reserved)
	if stats.Total > 0 {
		fmt.Fprintf(&b, " Average price %.0f EUR (range %.0f-%.0f), average %.0f km.",
			stats.AvgPrice, stats.MinPrice, stats.MaxPrice, stats.AvgKm)
	}
	if len(stats.ByMake) > 0 {
		makes := make([]string, 0, len(stats.ByMake))
		for make := range stats.ByMake {
			makes = append(makes, make)
		}
		sort.Strings(makes)
		b.WriteString(" Units by make:")
		for _, make := range makes {
			fmt.Fprintf(&b, " %s=%d", make, stats.ByMake[make])
		}
		b.WriteString(".")
	}

	return &entity.Message{
		Role:    entity.RoleSystem,
		Content: b.String(),
	}
}

// resolveConversation loads the requested conversation or starts a new one
// titled after the first message.
func (u *chatUsecase) resolveConversation(ctx context.Context, req *domain.SendMessageRequest) (*entity.Conversation, error) {
	if req.ConversationID != "" {
		conv, err := u.chatRepo.GetConversation(ctx, req.UserID, req.ConversationID)
		if err != nil {
			return nil, err
		}
		return conv, nil
	}

	conv, err := u.chatRepo.CreateConversation(ctx, req.UserID, titleFromMessage(req.Message))
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	u.logger.Info("new conversation started", "conversation_id", conv.ID, "user_id", req.UserID)
	return conv, nil
}

func (u *chatUsecase) ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	return u.chatRepo.ListConversations(ctx, userID)
}

func (u *chatUsecase) GetConversation(ctx context.Context, userID, conversationID string) (*entity.Conversation, error) {
	return u.chatRepo.GetConversation(ctx, userID, conversationID)
}

func (u *chatUsecase) DeleteConversation(ctx context.Context, userID, conversationID string) error {
	if err := u.chatRepo.DeleteConversation(ctx, userID, conversationID); err != nil {
		return err
	}
	u.logger.Info("conversation deleted", "conversation_id", conversationID, "user_id", userID)
	return nil
}

func (u *chatUsecase) ClearAll(ctx context.Context, userID string) (int, error) {
	n, err := u.chatRepo.DeleteAll(ctx, userID)
	if err != nil {
		return 0, err
	}
	u.logger.Info("conversations cleared", "count", n, "user_id", userID)
	return n, nil
}

func titleFromMessage(message string) string {
	title := strings.TrimSpace(message)
	title = strings.ReplaceAll(title, "\n", " ")
	if runes := []rune(title); len(runes) > maxTitleLength {
		title = string(runes[:maxTitleLength]) + "..."
	}
	return title
}
