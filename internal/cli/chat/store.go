// Package chat holds the client-side state of the assistant widget:
// whether it is open or minimized, the message transcript, and the
// known conversations.
package chat

import (
	"sync"

	"github.com/jmar008/dealaai/internal/cli/types"
)

// State is a snapshot of the widget.
type State struct {
	Open      bool
	Minimized bool
	Loading   bool

	Messages              []types.ChatMessage
	CurrentConversationID string
	Conversations         []types.Conversation
}

// Store owns the chat widget state. Safe for concurrent use; snapshots
// returned by State are copies.
type Store struct {
	mu    sync.Mutex
	state State

	nextSubID int
	listeners map[int]func(State)
}

// NewStore creates an empty, closed chat store.
func NewStore() *Store {
	return &Store{
		listeners: make(map[int]func(State)),
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	snap := s.state
	snap.Messages = append([]types.ChatMessage(nil), s.state.Messages...)
	snap.Conversations = append([]types.Conversation(nil), s.state.Conversations...)
	return snap
}

// Subscribe registers a listener called after every mutation. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// notifyLocked snapshots and fans out outside the lock.
func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()
	fns := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
	s.mu.Lock()
}

// Open shows the widget, restoring it if it was minimized.
func (s *Store) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Open = true
	s.state.Minimized = false
	s.notifyLocked()
}

// Close hides the widget. The transcript is kept so reopening resumes
// the conversation.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Open = false
	s.state.Minimized = false
	s.notifyLocked()
}

// ToggleMinimize collapses or restores an open widget.
func (s *Store) ToggleMinimize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Open {
		return
	}
	s.state.Minimized = !s.state.Minimized
	s.notifyLocked()
}

// SetLoading marks whether a reply is pending.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = loading
	s.notifyLocked()
}

// AddMessage appends one message to the transcript.
func (s *Store) AddMessage(msg types.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Messages = append(s.state.Messages, msg)
	s.notifyLocked()
}

// SetMessages replaces the transcript, e.g. after loading a conversation.
func (s *Store) SetMessages(msgs []types.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Messages = append([]types.ChatMessage(nil), msgs...)
	s.notifyLocked()
}

// ClearMessages empties the transcript and detaches the current
// conversation.
func (s *Store) ClearMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Messages = nil
	s.state.CurrentConversationID = ""
	s.notifyLocked()
}

// SetCurrentConversation switches to the given conversation, replacing
// the transcript with its messages. A nil conversation detaches and
// empties the transcript.
func (s *Store) SetCurrentConversation(conv *types.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conv == nil {
		s.state.CurrentConversationID = ""
		s.state.Messages = nil
	} else {
		s.state.CurrentConversationID = conv.ID
		s.state.Messages = append([]types.ChatMessage(nil), conv.Messages...)
	}
	s.notifyLocked()
}

// SetCurrentConversationID records which conversation the transcript
// belongs to without touching the messages, e.g. after the server
// assigns an ID to a fresh conversation.
func (s *Store) SetCurrentConversationID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentConversationID = id
	s.notifyLocked()
}

// SetConversations replaces the known conversation summaries.
func (s *Store) SetConversations(convs []types.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Conversations = append([]types.Conversation(nil), convs...)
	s.notifyLocked()
}

// AddConversation prepends a newly created conversation.
func (s *Store) AddConversation(conv types.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Conversations = append([]types.Conversation{conv}, s.state.Conversations...)
	s.notifyLocked()
}

// Reset drops everything, e.g. on logout.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	s.notifyLocked()
}
