package middleware

import (
	"net/http"
	"strings"

	deliverycontext "glowbeauty/internal/delivery/context"
	"glowbeauty/internal/delivery/http/response"
	"glowbeauty/internal/domain/entity"
	domainerrors "glowbeauty/internal/domain/errors"
	"glowbeauty/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionMiddleware resolves the customer session from cookies before
// the handler runs. A silent refresh performed during resolution writes
// its Set-Cookie headers onto the response, so the browser is healed in
// the same round trip.
type SessionMiddleware struct {
	resolver usecase.SessionResolver
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(resolver usecase.SessionResolver) *SessionMiddleware {
	return &SessionMiddleware{resolver: resolver}
}

// RequireSession guards routes that only authenticated customers may
// reach. Browser navigations are redirected to the login page; API
// clients get a 401 instead.
func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		decision, err := m.resolver.RequireAuth(c.Request().Context(), c.Request())
		if err != nil {
			return errors.WithStack(err)
		}

		response.WriteHeaders(c, decision.Headers)

		if decision.Kind == usecase.AuthKindRedirect {
			if wantsHTML(c.Request()) {
				return c.Redirect(http.StatusSeeOther, decision.Location)
			}

			return domainerrors.ErrAuthenticationRequired
		}

		setIdentity(c, decision.Identity)

		return next(c)
	}
}

// OptionalSession resolves the session for routes that render for both
// guests and customers. Anonymous requests proceed with no identity set.
func (m *SessionMiddleware) OptionalSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := m.resolver.OptionalAuth(c.Request().Context(), c.Request())
		if err != nil {
			return errors.WithStack(err)
		}

		response.WriteHeaders(c, session.Headers)

		if session.Authenticated() {
			setIdentity(c, session.Identity)
		}

		return next(c)
	}
}

func setIdentity(c echo.Context, identity *entity.Identity) {
	c.Set(string(deliverycontext.KeyIdentity), identity)
}

// GetIdentity returns the identity a session middleware attached, or nil
// for anonymous requests.
func GetIdentity(c echo.Context) *entity.Identity {
	identity, _ := c.Get(string(deliverycontext.KeyIdentity)).(*entity.Identity)

	return identity
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
