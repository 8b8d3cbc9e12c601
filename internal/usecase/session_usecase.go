package usecase

import (
	"context"
	"net/http"

	"glowbeauty/internal/domain/entity"
)

// Session is the outcome of resolving a request's cookies. A nil Identity
// means the request is anonymous. Headers carries any Set-Cookie lines a
// silent refresh produced; the caller must merge them into its response
// or the rotated tokens are lost.
type Session struct {
	Identity *entity.Identity
	Headers  http.Header
}

// Authenticated reports whether the session belongs to a known customer.
func (s *Session) Authenticated() bool {
	return s != nil && s.Identity != nil
}

// AuthKind discriminates the two outcomes of a guarded resolution.
type AuthKind string

const (
	// AuthKindAuthenticated means the request carries a live session.
	AuthKindAuthenticated AuthKind = "authenticated"

	// AuthKindRedirect means the caller should redirect to Location.
	AuthKindRedirect AuthKind = "redirect"
)

// AuthDecision is the result of a guarded resolution. Redirects are data,
// not panics or sentinel errors, so every caller handles both outcomes
// explicitly.
type AuthDecision struct {
	Kind     AuthKind
	Identity *entity.Identity
	Location string
	Headers  http.Header
}

// SessionResolver lazily resolves the current customer from request
// cookies, silently refreshing an expired access token when a valid
// refresh token is present.
type SessionResolver interface {
	// Resolve returns the current session. Expected authentication
	// failures produce an anonymous session, never an error; errors are
	// reserved for infrastructure faults.
	Resolve(ctx context.Context, r *http.Request) (*Session, error)

	// RequireAuth resolves the session and converts an anonymous result
	// into a redirect decision toward the login page.
	RequireAuth(ctx context.Context, r *http.Request) (*AuthDecision, error)

	// OptionalAuth resolves the session for pages that render for both
	// guests and customers.
	OptionalAuth(ctx context.Context, r *http.Request) (*Session, error)
}
