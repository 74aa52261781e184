package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type memStore struct {
	token      string
	clearCalls int
}

func (m *memStore) Token() string { return m.token }

func (m *memStore) ClearToken() error {
	m.clearCalls++
	m.token = ""
	return nil
}

func newTestClient(t *testing.T, handler http.Handler, store *memStore) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, store)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, srv
}

func TestDoAttachesTokenHeader(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"SUCCESS","data":{"id":"u-1","username":"maria"}}`))
	})

	store := &memStore{token: "tok-123"}
	c, _ := newTestClient(t, handler, store)

	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Token tok-123" {
		t.Errorf("expected Token scheme header, got %q", gotAuth)
	}
	if user == nil || user.Username != "maria" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestDoWithoutTokenOmitsHeader(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"code":"SUCCESS"}`))
	})

	c, _ := newTestClient(t, handler, &memStore{})

	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestUnauthorizedClearsTokenAndNotifies(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"UNAUTHORIZED","message":"token expired"}`))
	})

	store := &memStore{token: "tok-stale"}
	c, _ := newTestClient(t, handler, store)

	notified := 0
	unsubscribe := c.OnUnauthorized(func() { notified++ })

	_, err := c.Me(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if err.Error() != "token expired" {
		t.Errorf("expected the server's message, got %q", err.Error())
	}
	if store.token != "" {
		t.Error("401 must clear the stored token")
	}
	if store.clearCalls != 1 {
		t.Errorf("expected one clear, got %d", store.clearCalls)
	}
	if notified != 1 {
		t.Errorf("expected one unauthorized notification, got %d", notified)
	}

	// A second 401 after unsubscribing stays silent.
	unsubscribe()
	_, _ = c.Me(context.Background())
	if notified != 1 {
		t.Errorf("unsubscribed listener must not fire, got %d", notified)
	}
}

func TestFailedLoginSurfacesServerMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"UNAUTHORIZED","message":"invalid username or password"}`))
	})

	c, _ := newTestClient(t, handler, &memStore{})

	// Bad credentials come back as a 401; the server's own message must
	// reach the user, not a canned session-expired one.
	_, err := c.Login(context.Background(), "maria", "wrong")
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if err.Error() != "invalid username or password" {
		t.Errorf("expected the server's message, got %q", err.Error())
	}
}

func TestUnauthorizedWithEmptyBodyFallsBack(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	c, _ := newTestClient(t, handler, &memStore{token: "tok-stale"})

	_, err := c.Me(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if err.Error() != "session expired, please log in again" {
		t.Errorf("expected the fallback message, got %q", err.Error())
	}
}

func TestSuccessWithUnparseableBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	})

	c, _ := newTestClient(t, handler, &memStore{token: "tok"})

	// The status code decides the outcome; a garbled body on a 2xx is
	// still a success, just with no data.
	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("2xx with unparseable body must succeed, got %v", err)
	}
	if user != nil {
		t.Errorf("expected nil data, got %+v", user)
	}
}

func TestErrorSurfacesServerMessage(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"NOT_FOUND","message":"vehicle not found"}`))
	})

	c, _ := newTestClient(t, handler, &memStore{token: "tok"})

	_, err := c.GetVehicle(context.Background(), "VIN404")
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if err.Error() != "vehicle not found" {
		t.Errorf("expected the server's message, got %q", err.Error())
	}
}

func TestConnectionErrorIsTyped(t *testing.T) {
	store := &memStore{token: "tok"}
	// Reserved TEST-NET address, nothing listens there.
	c, err := New("http://192.0.2.1:1", store)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err = c.Me(ctx)
	if !IsConnectionError(err) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if store.clearCalls != 0 {
		t.Error("an unreachable server must not clear the token")
	}
}

func TestLoginPostsCredentials(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/auth/login" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"code":"SUCCESS","data":{"token":"tok-new","expire":"2026-08-29T00:00:00Z","user":{"id":"u-1","username":"maria"}}}`))
	})

	c, _ := newTestClient(t, handler, &memStore{})

	data, err := c.Login(context.Background(), "maria", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data == nil || data.Token != "tok-new" || data.User == nil {
		t.Errorf("unexpected login data: %+v", data)
	}
}

func TestNormalizeServerURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"http://localhost:8080", "http://localhost:8080", true},
		{"localhost:8080", "http://localhost:8080", true},
		{"https://api.example.com/", "https://api.example.com", true},
		{"http://api.example.com/some/path", "http://api.example.com", true},
		{"://", "", false},
	}

	for _, tt := range tests {
		got, err := normalizeServerURL(tt.in)
		if tt.ok && err != nil {
			t.Errorf("normalizeServerURL(%q): unexpected error %v", tt.in, err)
			continue
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("normalizeServerURL(%q): expected error", tt.in)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("normalizeServerURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
