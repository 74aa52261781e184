package session

import (
	"context"
	"testing"

	"github.com/jmar008/dealaai/internal/cli/types"
)

type fakeNavigator struct {
	redirects int
}

func (f *fakeNavigator) RedirectToLogin() {
	f.redirects++
}

func TestGateWaitsWhileLoading(t *testing.T) {
	m := NewManager(&fakeAPI{}, &fakeStore{})
	nav := &fakeNavigator{}
	g := NewGate(m, nav)

	if got := g.Admit(); got != DecisionWait {
		t.Errorf("expected DecisionWait while loading, got %v", got)
	}
	if nav.redirects != 0 {
		t.Error("loading state must never redirect")
	}
}

func TestGateAllowsVerifiedToken(t *testing.T) {
	api := &fakeAPI{meUser: testUser()}
	store := &fakeStore{token: "tok-saved"}
	m := NewManager(api, store)
	nav := &fakeNavigator{}
	g := NewGate(m, nav)

	if err := g.EnsureFresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := g.Admit(); got != DecisionAllow {
		t.Errorf("expected DecisionAllow, got %v", got)
	}
	if nav.redirects != 0 {
		t.Error("authenticated user must not be redirected")
	}
}

func TestGateRedirectsAnonymousUser(t *testing.T) {
	m := NewManager(&fakeAPI{}, &fakeStore{})
	nav := &fakeNavigator{}
	g := NewGate(m, nav)

	if err := g.EnsureFresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := g.Admit(); got != DecisionRedirect {
		t.Errorf("expected DecisionRedirect, got %v", got)
	}
	if nav.redirects != 1 {
		t.Errorf("expected exactly one redirect, got %d", nav.redirects)
	}

	// Re-rendering the same anonymous state must not redirect again.
	if got := g.Admit(); got != DecisionRedirect {
		t.Errorf("expected DecisionRedirect, got %v", got)
	}
	if nav.redirects != 1 {
		t.Errorf("redirect must fire at most once, got %d", nav.redirects)
	}
}

func TestGateRedirectsAgainAfterSessionLoss(t *testing.T) {
	api := &fakeAPI{loginData: &types.LoginData{Token: "tok-123", User: testUser()}}
	store := &fakeStore{}
	m := NewManager(api, store, WithInitialLoading(false))
	nav := &fakeNavigator{}
	g := NewGate(m, nav)

	if got := g.Admit(); got != DecisionRedirect {
		t.Fatalf("expected DecisionRedirect, got %v", got)
	}

	if _, err := m.Login(context.Background(), "maria", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if got := g.Admit(); got != DecisionAllow {
		t.Fatalf("expected DecisionAllow after login, got %v", got)
	}

	// The server rejects the token mid-session.
	m.ForceLogout()
	if got := g.Admit(); got != DecisionRedirect {
		t.Fatalf("expected DecisionRedirect after forced logout, got %v", got)
	}
	if nav.redirects != 2 {
		t.Errorf("expected a fresh redirect after session loss, got %d", nav.redirects)
	}
}

func TestGateChecksSessionOnce(t *testing.T) {
	api := &fakeAPI{meUser: testUser()}
	store := &fakeStore{token: "tok-saved"}
	m := NewManager(api, store)
	g := NewGate(m, &fakeNavigator{})

	for i := 0; i < 3; i++ {
		if err := g.EnsureFresh(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if api.meCalls != 1 {
		t.Errorf("gate must verify the session once, got %d calls", api.meCalls)
	}
}
