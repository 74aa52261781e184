// Package session tracks the authenticated user across the lifetime of
// the program. The manager owns a small state machine: it starts loading,
// resolves to authenticated or anonymous after a server round trip, and
// notifies subscribers on every change.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmar008/dealaai/internal/cli/types"
)

// API is the slice of the HTTP client the manager needs.
type API interface {
	Login(ctx context.Context, username, password string) (*types.LoginData, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*types.User, error)
}

// TokenStore persists credentials between runs.
type TokenStore interface {
	Token() string
	SetCredentials(token, username, userID string) error
	ClearToken() error
}

// State is a snapshot of the session. Token mirrors the persisted
// credential and is only set after the store write succeeded, so memory
// never claims a credential that storage does not hold. Err keeps the
// last login failure so UIs can show it without plumbing the return
// value around; it is cleared by the next attempt.
type State struct {
	User          *types.User
	Token         string
	Authenticated bool
	Loading       bool
	Err           error
}

// Option configures a Manager.
type Option func(*Manager)

// WithInitialLoading sets whether the manager starts in the loading
// state. It defaults to true so that consumers hold rendering decisions
// until the first CheckAuth resolves.
func WithInitialLoading(loading bool) Option {
	return func(m *Manager) {
		m.state.Loading = loading
	}
}

// Manager owns the session state. All methods are safe for concurrent
// use. Results of in-flight server calls are fenced by a generation
// counter: any local state change (login, logout, forced logout)
// invalidates responses that were already on the wire.
type Manager struct {
	api   API
	store TokenStore

	mu         sync.Mutex
	state      State
	generation uint64

	nextSubID int
	listeners map[int]func(State)
}

// NewManager creates a session manager.
func NewManager(api API, store TokenStore, opts ...Option) *Manager {
	m := &Manager{
		api:       api,
		store:     store,
		state:     State{Loading: true},
		listeners: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current snapshot.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers a listener called with every state change. The
// returned function removes the subscription.
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSubID
	m.nextSubID++
	m.listeners[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// BindUnauthorized wires the manager to the client's 401 broadcast so a
// rejected token drops the session immediately. The returned function
// removes the binding.
func (m *Manager) BindUnauthorized(subscribe func(func()) func()) (unsubscribe func()) {
	return subscribe(m.ForceLogout)
}

// setState replaces the state and notifies listeners outside the lock.
func (m *Manager) setState(next State) {
	m.state = next
	fns := make([]func(State), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()
	for _, fn := range fns {
		fn(next)
	}
	m.mu.Lock()
}

// Login authenticates and persists the credentials. The server must
// return both a token and a user; anything less is treated as a failed
// login so the session never ends up half-initialized.
func (m *Manager) Login(ctx context.Context, username, password string) (*types.User, error) {
	m.mu.Lock()
	m.generation++
	// Capture the fence before setState: notifying subscribers releases
	// the lock, and a subscriber may bump the generation.
	gen := m.generation
	m.setState(State{Loading: true})
	m.mu.Unlock()

	data, err := m.api.Login(ctx, username, password)

	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.generation {
		// Something else resolved the session while we were waiting.
		return nil, fmt.Errorf("login superseded")
	}

	if err != nil {
		m.setState(State{Err: err})
		return nil, err
	}
	if data == nil || data.Token == "" || data.User == nil {
		err := fmt.Errorf("invalid server response")
		m.setState(State{Err: err})
		return nil, err
	}

	if err := m.store.SetCredentials(data.Token, data.User.Username, data.User.ID); err != nil {
		err = fmt.Errorf("failed to save credentials: %w", err)
		m.setState(State{Err: err})
		return nil, err
	}

	m.setState(State{User: data.User, Token: data.Token, Authenticated: true})
	return data.User, nil
}

// Logout ends the session. The remote call is best effort: whatever the
// server says, the local credentials are gone afterwards.
func (m *Manager) Logout(ctx context.Context) error {
	_ = m.api.Logout(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	err := m.store.ClearToken()
	m.setState(State{})
	return err
}

// ForceLogout drops the session without a server round trip. Used when
// the server has already rejected the token.
func (m *Manager) ForceLogout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	_ = m.store.ClearToken()
	m.setState(State{})
}

// CheckAuth resolves the session from the stored token. A stored token
// is never trusted by itself: the profile endpoint must confirm it.
// With no token at all the session resolves to anonymous without a
// network call.
func (m *Manager) CheckAuth(ctx context.Context) error {
	token := m.store.Token()
	if token == "" {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.generation++
		m.setState(State{})
		return nil
	}

	m.mu.Lock()
	m.generation++
	gen := m.generation
	m.setState(State{Loading: true})
	m.mu.Unlock()

	user, err := m.api.Me(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.generation {
		// A newer login/logout won the race; drop this result.
		return nil
	}

	if err != nil || user == nil {
		_ = m.store.ClearToken()
		m.setState(State{})
		return err
	}

	m.setState(State{User: user, Token: token, Authenticated: true})
	return nil
}
