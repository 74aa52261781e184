package session

import "context"

// Navigator is where the gate sends users who are not allowed in.
type Navigator interface {
	RedirectToLogin()
}

// Decision is the gate's verdict for the current session state.
type Decision int

const (
	// DecisionWait means the session is still resolving; render nothing.
	DecisionWait Decision = iota
	// DecisionAllow means the user may proceed.
	DecisionAllow
	// DecisionRedirect means the user was sent to login.
	DecisionRedirect
)

// Gate protects an entry point behind authentication. It triggers at
// most one session check, and redirects at most once until the session
// becomes authenticated again.
type Gate struct {
	session *Manager
	nav     Navigator

	checked    bool
	redirected bool
}

// NewGate creates a gate over the given session.
func NewGate(session *Manager, nav Navigator) *Gate {
	return &Gate{
		session: session,
		nav:     nav,
	}
}

// EnsureFresh triggers the session check if this gate has not done so
// yet. Callers invoke it once when the protected surface mounts.
func (g *Gate) EnsureFresh(ctx context.Context) error {
	if g.checked {
		return nil
	}
	g.checked = true
	return g.session.CheckAuth(ctx)
}

// Admit decides what to do with the current session state. While the
// session loads, the answer is to wait, never to redirect: redirecting
// on a still-loading session would bounce users who hold a valid token.
func (g *Gate) Admit() Decision {
	state := g.session.State()

	if state.Loading {
		return DecisionWait
	}

	if state.Authenticated {
		g.redirected = false
		return DecisionAllow
	}

	if !g.redirected {
		g.redirected = true
		g.nav.RedirectToLogin()
	}
	return DecisionRedirect
}
