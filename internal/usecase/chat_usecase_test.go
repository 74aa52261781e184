package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jmar008/dealaai/internal/domain"
	"github.com/jmar008/dealaai/internal/domain/entity"
)

type fakeChatRepository struct {
	conversations map[string]*entity.Conversation
	messages      map[string][]*entity.Message // keyed by conversation id
}

func newFakeChatRepository() *fakeChatRepository {
	return &fakeChatRepository{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string][]*entity.Message),
	}
}

func (r *fakeChatRepository) CreateConversation(ctx context.Context, userID, title string) (*entity.Conversation, error) {
	conv := &entity.Conversation{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Active:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.conversations[conv.ID] = conv
	return conv, nil
}

func (r *fakeChatRepository) GetConversation(ctx context.Context, userID, conversationID string) (*entity.Conversation, error) {
	conv, ok := r.conversations[conversationID]
	if !ok || conv.UserID != userID {
		return nil, domain.NewNotFoundError("Conversation", conversationID)
	}
	copied := *conv
	copied.Messages = r.messages[conversationID]
	copied.MessageCount = len(copied.Messages)
	return &copied, nil
}

func (r *fakeChatRepository) ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	var convs []*entity.Conversation
	for _, c := range r.conversations {
		if c.UserID == userID {
			convs = append(convs, c)
		}
	}
	return convs, nil
}

func (r *fakeChatRepository) AppendMessage(ctx context.Context, msg *entity.Message) (*entity.Message, error) {
	r.messages[msg.ConversationID] = append(r.messages[msg.ConversationID], msg)
	return msg, nil
}

func (r *fakeChatRepository) DeleteConversation(ctx context.Context, userID, conversationID string) error {
	conv, ok := r.conversations[conversationID]
	if !ok || conv.UserID != userID {
		return domain.NewNotFoundError("Conversation", conversationID)
	}
	delete(r.conversations, conversationID)
	delete(r.messages, conversationID)
	return nil
}

func (r *fakeChatRepository) DeleteAll(ctx context.Context, userID string) (int, error) {
	n := 0
	for id, c := range r.conversations {
		if c.UserID == userID {
			delete(r.conversations, id)
			delete(r.messages, id)
			n++
		}
	}
	return n, nil
}

type fakeAssistant struct {
	reply *domain.AssistantReply
	err   error

	gotMessages []*entity.Message
}

func (a *fakeAssistant) Complete(ctx context.Context, messages []*entity.Message) (*domain.AssistantReply, error) {
	a.gotMessages = messages
	if a.err != nil {
		return nil, a.err
	}
	return a.reply, nil
}

func chatFixture(t *testing.T) (domain.ChatUsecase, *fakeChatRepository, *fakeAssistant, *entity.User) {
	t.Helper()

	userRepo := newFakeUserRepository()
	user := userRepo.add("seller", "secret123")
	user.ChatEnabled = true

	chatRepo := newFakeChatRepository()
	assistant := &fakeAssistant{
		reply: &domain.AssistantReply{Content: "hello!", TokensUsed: 12, Model: "test-model"},
	}
	stockRepo := &fakeStockRepository{vehicles: testVehicles()}

	uc := NewChatUsecase(assistant, chatRepo, userRepo, stockRepo, discardLogger())
	return uc, chatRepo, assistant, user
}

func TestSendMessageStartsConversation(t *testing.T) {
	uc, repo, assistant, user := chatFixture(t)

	exchange, err := uc.SendMessage(context.Background(), &domain.SendMessageRequest{
		UserID:  user.ID,
		Message: "how many BMWs are in stock?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if exchange.ConversationID == "" {
		t.Fatal("expected a conversation id")
	}
	conv := repo.conversations[exchange.ConversationID]
	if conv == nil {
		t.Fatal("conversation was not persisted")
	}
	if conv.Title != "how many BMWs are in stock?" {
		t.Errorf("unexpected title: %q", conv.Title)
	}

	msgs := repo.messages[exchange.ConversationID]
	if len(msgs) != 2 {
		t.Fatalf("got %d persisted messages, want 2", len(msgs))
	}
	if msgs[0].Role != entity.RoleUser || msgs[1].Role != entity.RoleAssistant {
		t.Errorf("unexpected roles: %s, %s", msgs[0].Role, msgs[1].Role)
	}
	if exchange.AssistantMessage.Content != "hello!" {
		t.Errorf("unexpected assistant content: %q", exchange.AssistantMessage.Content)
	}
	if exchange.AssistantMessage.ModelUsed != "test-model" {
		t.Errorf("unexpected model: %q", exchange.AssistantMessage.ModelUsed)
	}
	// Stock summary system message plus the user's message.
	if len(assistant.gotMessages) != 2 {
		t.Fatalf("assistant got %d history messages, want 2", len(assistant.gotMessages))
	}
	if assistant.gotMessages[0].Role != entity.RoleSystem {
		t.Errorf("first history message role = %s, want system", assistant.gotMessages[0].Role)
	}
	if !strings.Contains(assistant.gotMessages[0].Content, "stock") {
		t.Errorf("system message does not mention stock: %q", assistant.gotMessages[0].Content)
	}
}

func TestSendMessageContinuesConversation(t *testing.T) {
	uc, _, assistant, user := chatFixture(t)
	ctx := context.Background()

	first, err := uc.SendMessage(ctx, &domain.SendMessageRequest{
		UserID:  user.ID,
		Message: "first",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := uc.SendMessage(ctx, &domain.SendMessageRequest{
		UserID:         user.ID,
		ConversationID: first.ConversationID,
		Message:        "second",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.ConversationID != first.ConversationID {
		t.Error("second send created a new conversation")
	}
	// Stock summary, both prior turns and the new one.
	if len(assistant.gotMessages) != 4 {
		t.Errorf("assistant got %d history messages, want 4", len(assistant.gotMessages))
	}
}

func TestSendMessageValidation(t *testing.T) {
	uc, _, _, user := chatFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *domain.SendMessageRequest
	}{
		{"empty message", &domain.SendMessageRequest{UserID: user.ID, Message: "   "}},
		{"missing user", &domain.SendMessageRequest{Message: "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.SendMessage(ctx, tt.req); !domain.IsInvalidInput(err) {
				t.Errorf("expected invalid input error, got %v", err)
			}
		})
	}
}

func TestSendMessageChatDisabled(t *testing.T) {
	uc, _, _, user := chatFixture(t)
	user.ChatEnabled = false

	_, err := uc.SendMessage(context.Background(), &domain.SendMessageRequest{
		UserID:  user.ID,
		Message: "hi",
	})
	if !domain.IsForbidden(err) {
		t.Errorf("expected forbidden error, got %v", err)
	}
}

func TestSendMessageAssistantFailureLeavesNoReply(t *testing.T) {
	uc, repo, assistant, user := chatFixture(t)
	assistant.err = errors.New("upstream down")

	_, err := uc.SendMessage(context.Background(), &domain.SendMessageRequest{
		UserID:  user.ID,
		Message: "hi",
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	// The user message is persisted; no assistant message is.
	for _, msgs := range repo.messages {
		if len(msgs) != 1 || msgs[0].Role != entity.RoleUser {
			t.Errorf("unexpected persisted messages: %d", len(msgs))
		}
	}
}

func TestTitleFromMessageTruncates(t *testing.T) {
	long := strings.Repeat("x", 80)
	title := titleFromMessage(long)
	if len(title) != maxTitleLength+3 {
		t.Errorf("got title length %d, want %d", len(title), maxTitleLength+3)
	}
	if !strings.HasSuffix(title, "...") {
		t.Error("expected ellipsis suffix")
	}
}

func TestTitleFromMessageKeepsRunesIntact(t *testing.T) {
	long := strings.Repeat("ñ", 80)
	title := titleFromMessage(long)
	if !utf8.ValidString(title) {
		t.Fatalf("truncated title is not valid UTF-8: %q", title)
	}
	if got := utf8.RuneCountInString(title); got != maxTitleLength+3 {
		t.Errorf("got %d runes, want %d", got, maxTitleLength+3)
	}
}

func TestClearAll(t *testing.T) {
	uc, _, _, user := chatFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := uc.SendMessage(ctx, &domain.SendMessageRequest{
			UserID:  user.ID,
			Message: "msg",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	n, err := uc.ClearAll(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("cleared %d conversations, want 3", n)
	}

	convs, _ := uc.ListConversations(ctx, user.ID)
	if len(convs) != 0 {
		t.Errorf("got %d conversations after clear, want 0", len(convs))
	}
}
