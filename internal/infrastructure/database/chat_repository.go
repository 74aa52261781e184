package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmar008/dealaai/internal/domain"
	"github.com/jmar008/dealaai/internal/domain/entity"
)

type chatRepository struct {
	db *sql.DB
}

// NewChatRepository creates the MySQL-backed ChatRepository.
func NewChatRepository(db *sql.DB) domain.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateConversation(ctx context.Context, userID, title string) (*entity.Conversation, error) {
	conv := &entity.Conversation{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO conversations (id, user_id, title, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		conv.ID, conv.UserID, conv.Title, conv.Active, conv.CreatedAt, conv.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

func (r *chatRepository) GetConversation(ctx context.Context, userID, conversationID string) (*entity.Conversation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, active, created_at, updated_at
		FROM conversations WHERE id = ? AND user_id = ?`,
		conversationID, userID)

	var conv entity.Conversation
	err := row.Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.Active,
		&conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("Conversation", conversationID)
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, conversation_id, role, content, tokens_used, model_used, created_at
		FROM messages WHERE conversation_id = ? ORDER BY created_at, id`,
		conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var msg entity.Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role,
			&msg.Content, &msg.TokensUsed, &msg.ModelUsed, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		conv.Messages = append(conv.Messages, &msg)
	}
	conv.MessageCount = len(conv.Messages)
	return &conv, rows.Err()
}

func (r *chatRepository) ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.user_id, c.title, c.active, c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM messages m WHERE m.conversation_id = c.id)
		FROM conversations c
		WHERE c.user_id = ?
		ORDER BY c.updated_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var convs []*entity.Conversation
	for rows.Next() {
		var conv entity.Conversation
		if err := rows.Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.Active,
			&conv.CreatedAt, &conv.UpdatedAt, &conv.MessageCount); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		convs = append(convs, &conv)
	}
	return convs, rows.Err()
}

func (r *chatRepository) AppendMessage(ctx context.Context, msg *entity.Message) (*entity.Message, error) {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, conversation_id, role, content, tokens_used, model_used, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.ConversationID, msg.Role, msg.Content,
		msg.TokensUsed, msg.ModelUsed, msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}

	// Bump the conversation so listing orders by recency.
	_, err = r.db.ExecContext(ctx,
		"UPDATE conversations SET updated_at = ? WHERE id = ?",
		msg.CreatedAt, msg.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to touch conversation: %w", err)
	}

	return msg, nil
}

func (r *chatRepository) DeleteConversation(ctx context.Context, userID, conversationID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM conversations WHERE id = ? AND user_id = ?",
		conversationID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFoundError("Conversation", conversationID)
	}

	_, err = r.db.ExecContext(ctx,
		"DELETE FROM messages WHERE conversation_id = ?", conversationID)
	if err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	return nil
}

func (r *chatRepository) DeleteAll(ctx context.Context, userID string) (int, error) {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM messages WHERE conversation_id IN
			(SELECT id FROM conversations WHERE user_id = ?)`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete messages: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		"DELETE FROM conversations WHERE user_id = ?", userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete conversations: %w", err)
	}

	n, _ := res.RowsAffected()
	return int(n), nil
}
