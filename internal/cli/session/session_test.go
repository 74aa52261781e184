package session

import (
	"context"
	"errors"
	"testing"

	"github.com/jmar008/dealaai/internal/cli/types"
)

type fakeAPI struct {
	loginData *types.LoginData
	loginErr  error

	meUser *types.User
	meErr  error
	// meHook runs before Me returns, letting tests interleave calls.
	meHook func()

	meCalls     int
	logoutCalls int
	logoutErr   error
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (*types.LoginData, error) {
	return f.loginData, f.loginErr
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAPI) Me(ctx context.Context) (*types.User, error) {
	f.meCalls++
	if f.meHook != nil {
		f.meHook()
	}
	return f.meUser, f.meErr
}

type fakeStore struct {
	token      string
	username   string
	userID     string
	clearCalls int
}

func (f *fakeStore) Token() string { return f.token }

func (f *fakeStore) SetCredentials(token, username, userID string) error {
	f.token = token
	f.username = username
	f.userID = userID
	return nil
}

func (f *fakeStore) ClearToken() error {
	f.clearCalls++
	f.token = ""
	f.username = ""
	f.userID = ""
	return nil
}

func testUser() *types.User {
	return &types.User{ID: "u-1", Username: "maria", FullName: "Maria Garcia"}
}

func TestInitialStateIsLoading(t *testing.T) {
	m := NewManager(&fakeAPI{}, &fakeStore{})
	if !m.State().Loading {
		t.Error("expected initial state to be loading")
	}

	m = NewManager(&fakeAPI{}, &fakeStore{}, WithInitialLoading(false))
	if m.State().Loading {
		t.Error("expected WithInitialLoading(false) to disable initial loading")
	}
}

func TestLoginSuccess(t *testing.T) {
	api := &fakeAPI{loginData: &types.LoginData{Token: "tok-123", User: testUser()}}
	store := &fakeStore{}
	m := NewManager(api, store)

	user, err := m.Login(context.Background(), "maria", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "maria" {
		t.Errorf("expected user maria, got %s", user.Username)
	}

	state := m.State()
	if !state.Authenticated || state.Loading {
		t.Errorf("expected authenticated idle state, got %+v", state)
	}
	if store.token != "tok-123" {
		t.Errorf("expected token persisted, got %q", store.token)
	}
	// Memory and storage agree on the credential.
	if state.Token != store.token {
		t.Errorf("state token %q does not match stored token %q", state.Token, store.token)
	}
	if store.userID != "u-1" {
		t.Errorf("expected user id persisted, got %q", store.userID)
	}
}

func TestLoginRejectsPartialResponse(t *testing.T) {
	tests := []struct {
		name string
		data *types.LoginData
	}{
		{"missing token", &types.LoginData{User: testUser()}},
		{"missing user", &types.LoginData{Token: "tok-123"}},
		{"empty payload", &types.LoginData{}},
		{"nil payload", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{loginData: tt.data}
			store := &fakeStore{}
			m := NewManager(api, store)

			_, err := m.Login(context.Background(), "maria", "secret")
			if err == nil {
				t.Fatal("expected error for partial login response")
			}
			if err.Error() != "invalid server response" {
				t.Errorf("unexpected error message: %v", err)
			}
			if store.token != "" {
				t.Error("partial response must not persist a token")
			}
			if m.State().Authenticated {
				t.Error("partial response must not authenticate the session")
			}
		})
	}
}

func TestLoginFailureResolvesToAnonymous(t *testing.T) {
	api := &fakeAPI{loginErr: errors.New("bad credentials")}
	m := NewManager(api, &fakeStore{})

	if _, err := m.Login(context.Background(), "maria", "wrong"); err == nil {
		t.Fatal("expected login error")
	}

	state := m.State()
	if state.Loading || state.Authenticated {
		t.Errorf("expected anonymous idle state, got %+v", state)
	}
	if state.Err == nil {
		t.Error("expected the failure to be stored in the state")
	}
}

func TestCheckAuthWithoutTokenSkipsNetwork(t *testing.T) {
	api := &fakeAPI{}
	m := NewManager(api, &fakeStore{})

	if err := m.CheckAuth(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.meCalls != 0 {
		t.Error("no token stored, CheckAuth must not hit the server")
	}

	state := m.State()
	if state.Loading || state.Authenticated {
		t.Errorf("expected anonymous idle state, got %+v", state)
	}
}

func TestCheckAuthVerifiesStoredToken(t *testing.T) {
	api := &fakeAPI{meUser: testUser()}
	store := &fakeStore{token: "tok-saved"}
	m := NewManager(api, store)

	if err := m.CheckAuth(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.meCalls != 1 {
		t.Error("a stored token must be verified against the server")
	}
	if !m.State().Authenticated {
		t.Error("expected authenticated state after verified token")
	}
	if m.State().Token != "tok-saved" {
		t.Errorf("state token = %q, want the verified stored token", m.State().Token)
	}
}

func TestStoredTokenNotTrustedBeforeValidation(t *testing.T) {
	api := &fakeAPI{meUser: testUser()}
	store := &fakeStore{token: "tok-saved"}
	m := NewManager(api, store)

	// Observe the state while the validation round trip is in flight.
	var during State
	api.meHook = func() {
		during = m.State()
	}

	if err := m.CheckAuth(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if during.Authenticated {
		t.Error("a stored token must not flip the session to authenticated before validation resolves")
	}
	if !during.Loading {
		t.Error("expected loading state while validation is in flight")
	}
}

func TestCheckAuthClearsRejectedToken(t *testing.T) {
	api := &fakeAPI{meErr: errors.New("401")}
	store := &fakeStore{token: "tok-stale"}
	m := NewManager(api, store)

	_ = m.CheckAuth(context.Background())

	if store.token != "" {
		t.Error("rejected token must be cleared")
	}
	if m.State().Authenticated {
		t.Error("expected anonymous state after rejected token")
	}
}

func TestStaleCheckAuthResultIsDropped(t *testing.T) {
	store := &fakeStore{token: "tok-saved"}
	api := &fakeAPI{meUser: testUser()}
	m := NewManager(api, store)

	// The user logs out while the profile request is still in flight.
	api.meHook = func() {
		m.ForceLogout()
	}

	if err := m.CheckAuth(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state := m.State()
	if state.Authenticated {
		t.Error("stale profile response must not resurrect the session")
	}
	if store.token != "" {
		t.Errorf("expected token cleared, got %q", store.token)
	}
}

func TestForceLogoutDuringLoadingNotificationWins(t *testing.T) {
	store := &fakeStore{token: "tok-saved"}
	api := &fakeAPI{meUser: testUser()}
	m := NewManager(api, store)

	// A subscriber reacts to the loading notification itself by dropping
	// the session. The validation call is already committed at that
	// point; its result must still be discarded.
	m.Subscribe(func(s State) {
		if s.Loading {
			m.ForceLogout()
		}
	})

	if err := m.CheckAuth(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state := m.State()
	if state.Authenticated || state.Token != "" {
		t.Errorf("forced logout must win over the in-flight validation, got %+v", state)
	}
	if store.token != "" {
		t.Errorf("expected token cleared, got %q", store.token)
	}
}

func TestLogoutAlwaysClearsLocally(t *testing.T) {
	api := &fakeAPI{
		loginData: &types.LoginData{Token: "tok-123", User: testUser()},
		logoutErr: errors.New("server down"),
	}
	store := &fakeStore{}
	m := NewManager(api, store)

	if _, err := m.Login(context.Background(), "maria", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := m.Logout(context.Background()); err != nil {
		t.Fatalf("logout must swallow remote failures, got %v", err)
	}
	if api.logoutCalls != 1 {
		t.Error("expected the remote logout to be attempted")
	}
	if store.token != "" {
		t.Error("local credentials must be cleared even when the server fails")
	}
	if m.State().Authenticated || m.State().Token != "" {
		t.Error("expected anonymous state with no token after logout")
	}
}

func TestSubscribeNotifiesOnChange(t *testing.T) {
	api := &fakeAPI{loginData: &types.LoginData{Token: "tok-123", User: testUser()}}
	m := NewManager(api, &fakeStore{})

	var states []State
	unsubscribe := m.Subscribe(func(s State) {
		states = append(states, s)
	})

	if _, err := m.Login(context.Background(), "maria", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	// Loading, then authenticated.
	if len(states) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(states))
	}
	if !states[0].Loading {
		t.Error("first notification should be the loading state")
	}
	if !states[1].Authenticated {
		t.Error("second notification should be the authenticated state")
	}

	unsubscribe()
	m.ForceLogout()
	if len(states) != 2 {
		t.Error("unsubscribed listener must not be notified")
	}
}

func TestForceLogoutDropsSession(t *testing.T) {
	api := &fakeAPI{loginData: &types.LoginData{Token: "tok-123", User: testUser()}}
	store := &fakeStore{}
	m := NewManager(api, store)

	if _, err := m.Login(context.Background(), "maria", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	m.ForceLogout()

	if store.token != "" {
		t.Error("expected token cleared")
	}
	state := m.State()
	if state.Authenticated || state.Loading || state.User != nil {
		t.Errorf("expected empty anonymous state, got %+v", state)
	}
}
