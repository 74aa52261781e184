package chat

import (
	"testing"

	"github.com/jmar008/dealaai/internal/cli/types"
)

func TestOpenCloseKeepsTranscript(t *testing.T) {
	s := NewStore()

	s.Open()
	s.AddMessage(types.ChatMessage{ID: "m1", Role: "user", Content: "hola"})
	s.AddMessage(types.ChatMessage{ID: "m2", Role: "assistant", Content: "buenas"})

	s.Close()
	state := s.State()
	if state.Open {
		t.Error("expected widget closed")
	}
	if len(state.Messages) != 2 {
		t.Errorf("closing must keep the transcript, got %d messages", len(state.Messages))
	}

	s.Open()
	state = s.State()
	if !state.Open || state.Minimized {
		t.Errorf("expected open, restored widget, got %+v", state)
	}
	if len(state.Messages) != 2 {
		t.Error("reopening must resume the conversation")
	}
}

func TestToggleMinimize(t *testing.T) {
	s := NewStore()

	// Minimizing a closed widget is a no-op.
	s.ToggleMinimize()
	if s.State().Minimized {
		t.Error("closed widget cannot be minimized")
	}

	s.Open()
	s.ToggleMinimize()
	if !s.State().Minimized {
		t.Error("expected widget minimized")
	}

	s.ToggleMinimize()
	if s.State().Minimized {
		t.Error("expected widget restored")
	}

	// Opening always restores.
	s.ToggleMinimize()
	s.Open()
	if s.State().Minimized {
		t.Error("open must restore a minimized widget")
	}
}

func TestMessagesKeepOrder(t *testing.T) {
	s := NewStore()

	s.AddMessage(types.ChatMessage{ID: "m1", Role: "user", Content: "first"})
	s.AddMessage(types.ChatMessage{ID: "m2", Role: "assistant", Content: "second"})
	s.AddMessage(types.ChatMessage{ID: "m3", Role: "user", Content: "third"})

	state := s.State()
	if len(state.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(state.Messages))
	}
	for i, want := range []string{"m1", "m2", "m3"} {
		if state.Messages[i].ID != want {
			t.Errorf("message %d: expected %s, got %s", i, want, state.Messages[i].ID)
		}
	}
}

func TestClearMessagesDetachesConversation(t *testing.T) {
	s := NewStore()
	s.SetCurrentConversationID("c1")
	s.SetMessages([]types.ChatMessage{{ID: "m1"}, {ID: "m2"}})

	s.ClearMessages()

	state := s.State()
	if len(state.Messages) != 0 {
		t.Error("expected empty transcript")
	}
	if state.CurrentConversationID != "" {
		t.Error("clearing must detach the current conversation")
	}
}

func TestSwitchConversationReplacesTranscript(t *testing.T) {
	s := NewStore()
	s.SetCurrentConversation(&types.Conversation{
		ID:       "c1",
		Messages: []types.ChatMessage{{ID: "m1"}, {ID: "m2"}},
	})

	s.SetCurrentConversation(&types.Conversation{
		ID:       "c2",
		Messages: []types.ChatMessage{{ID: "m9"}},
	})

	state := s.State()
	if state.CurrentConversationID != "c2" {
		t.Errorf("expected conversation c2, got %s", state.CurrentConversationID)
	}
	if len(state.Messages) != 1 || state.Messages[0].ID != "m9" {
		t.Errorf("expected replaced transcript, got %+v", state.Messages)
	}

	// A conversation with no messages yields an empty transcript.
	s.SetCurrentConversation(&types.Conversation{ID: "c3"})
	if got := len(s.State().Messages); got != 0 {
		t.Errorf("expected empty transcript, got %d messages", got)
	}

	// Nil detaches entirely.
	s.SetCurrentConversation(nil)
	state = s.State()
	if state.CurrentConversationID != "" || len(state.Messages) != 0 {
		t.Errorf("expected detached empty state, got %+v", state)
	}
}

func TestAddConversationPrepends(t *testing.T) {
	s := NewStore()
	s.SetConversations([]types.Conversation{{ID: "c1"}, {ID: "c2"}})
	s.AddConversation(types.Conversation{ID: "c3"})

	state := s.State()
	if len(state.Conversations) != 3 {
		t.Fatalf("expected 3 conversations, got %d", len(state.Conversations))
	}
	if state.Conversations[0].ID != "c3" {
		t.Errorf("expected newest conversation first, got %s", state.Conversations[0].ID)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.AddMessage(types.ChatMessage{ID: "m1", Content: "original"})

	snap := s.State()
	snap.Messages[0].Content = "mutated"

	if s.State().Messages[0].Content != "original" {
		t.Error("mutating a snapshot must not affect the store")
	}
}

func TestSubscribeNotifies(t *testing.T) {
	s := NewStore()

	var got []State
	unsubscribe := s.Subscribe(func(state State) {
		got = append(got, state)
	})

	s.Open()
	s.SetLoading(true)
	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if !got[1].Loading {
		t.Error("expected loading state in second notification")
	}

	unsubscribe()
	s.Close()
	if len(got) != 2 {
		t.Error("unsubscribed listener must not be notified")
	}
}

func TestReset(t *testing.T) {
	s := NewStore()
	s.Open()
	s.SetCurrentConversationID("c1")
	s.AddMessage(types.ChatMessage{ID: "m1"})
	s.SetConversations([]types.Conversation{{ID: "c1"}})

	s.Reset()

	state := s.State()
	if state.Open || state.Loading || state.Minimized {
		t.Errorf("expected closed idle widget, got %+v", state)
	}
	if len(state.Messages) != 0 || len(state.Conversations) != 0 || state.CurrentConversationID != "" {
		t.Errorf("expected empty store, got %+v", state)
	}
}
