package impl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	infraauth "glowbeauty/internal/infra/auth"

	"glowbeauty/internal/domain/service"
	"glowbeauty/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithCookies(access, refresh string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/account/me", nil)
	if access != "" {
		r.AddCookie(&http.Cookie{Name: service.AccessCookieName, Value: access})
	}
	if refresh != "" {
		r.AddCookie(&http.Cookie{Name: service.RefreshCookieName, Value: refresh})
	}

	return r
}

// staleAccessToken mints a token the resolver's codec will reject, which
// behaves exactly like an expired access token on the fast path.
func staleAccessToken(t *testing.T, out *usecase.LoginOutput) string {
	t.Helper()

	cfg := newTestConfig()
	cfg.SecretKey.Access = "rotated-away-secret"
	foreign, err := infraauth.NewJWTCodec(cfg)
	require.NoError(t, err)

	token, err := foreign.IssueAccess(out.Identity)
	require.NoError(t, err)

	return token
}

func TestSessionResolver_ValidAccessToken(t *testing.T) {
	env := newTestEnv(t)
	env.register(t)
	login := env.login(t)

	session, err := env.resolver.Resolve(context.Background(), requestWithCookies(login.AccessToken, login.RefreshToken))
	require.NoError(t, err)
	require.True(t, session.Authenticated())
	assert.Equal(t, login.Identity.CustomerID, session.Identity.CustomerID)
	assert.Empty(t, session.Headers, "the fast path must not rotate anything")
}

func TestSessionResolver_SilentRefresh(t *testing.T) {
	env := newTestEnv(t)
	env.register(t)
	login := env.login(t)

	stale := staleAccessToken(t, login)

	session, err := env.resolver.Resolve(context.Background(), requestWithCookies(stale, login.RefreshToken))
	require.NoError(t, err)
	require.True(t, session.Authenticated())
	assert.Equal(t, login.Identity.CustomerID, session.Identity.CustomerID)

	// The refresh must rotate both cookies; dropping these headers would
	// strand the client on the superseded token.
	require.NotNil(t, session.Headers)
	setCookies := session.Headers.Values("Set-Cookie")
	assert.Len(t, setCookies, 2)

	stored, err := env.directory.FindByID(context.Background(), login.Identity.CustomerID)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, stored.RefreshToken, "stored refresh token must be rotated")
}

func TestSessionResolver_AnonymousWithoutCookies(t *testing.T) {
	env := newTestEnv(t)

	session, err := env.resolver.Resolve(context.Background(), requestWithCookies("", ""))
	require.NoError(t, err)
	assert.False(t, session.Authenticated())
}

func TestSessionResolver_GarbageCookiesStayAnonymous(t *testing.T) {
	env := newTestEnv(t)
	env.register(t)

	session, err := env.resolver.Resolve(context.Background(), requestWithCookies("not-a-jwt", "also-not-a-jwt"))
	require.NoError(t, err)
	assert.False(t, session.Authenticated())
}

func TestSessionResolver_SupersededRefreshFailsClosed(t *testing.T) {
	env := newTestEnv(t)
	env.register(t)
	login := env.login(t)

	// Another request already rotated the stored token.
	_, err := env.auth.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)

	stale := staleAccessToken(t, login)

	session, err := env.resolver.Resolve(context.Background(), requestWithCookies(stale, login.RefreshToken))
	require.NoError(t, err)
	assert.False(t, session.Authenticated(), "the race loser must not get a session")
}

func TestSessionResolver_RefreshAfterLogout(t *testing.T) {
	env := newTestEnv(t)
	env.register(t)
	login := env.login(t)

	require.NoError(t, env.auth.Logout(context.Background(), login.Identity.CustomerID))

	stale := staleAccessToken(t, login)

	session, err := env.resolver.Resolve(context.Background(), requestWithCookies(stale, login.RefreshToken))
	require.NoError(t, err)
	assert.False(t, session.Authenticated())
}

func TestSessionResolver_RequireAuth(t *testing.T) {
	env := newTestEnv(t)
	env.register(t)
	login := env.login(t)

	decision, err := env.resolver.RequireAuth(context.Background(), requestWithCookies(login.AccessToken, login.RefreshToken))
	require.NoError(t, err)
	assert.Equal(t, usecase.AuthKindAuthenticated, decision.Kind)
	require.NotNil(t, decision.Identity)
	assert.Equal(t, login.Identity.CustomerID, decision.Identity.CustomerID)
}

func TestSessionResolver_RequireAuthRedirectsAnonymous(t *testing.T) {
	env := newTestEnv(t)

	decision, err := env.resolver.RequireAuth(context.Background(), requestWithCookies("", ""))
	require.NoError(t, err)
	assert.Equal(t, usecase.AuthKindRedirect, decision.Kind)
	assert.Equal(t, "/login", decision.Location)
	assert.Nil(t, decision.Identity)
}

func TestSessionResolver_RequireAuthKeepsRefreshHeaders(t *testing.T) {
	env := newTestEnv(t)
	env.register(t)
	login := env.login(t)

	stale := staleAccessToken(t, login)

	decision, err := env.resolver.RequireAuth(context.Background(), requestWithCookies(stale, login.RefreshToken))
	require.NoError(t, err)
	assert.Equal(t, usecase.AuthKindAuthenticated, decision.Kind)
	assert.Len(t, decision.Headers.Values("Set-Cookie"), 2)
}

func TestSessionResolver_OptionalAuth(t *testing.T) {
	env := newTestEnv(t)
	env.register(t)
	login := env.login(t)

	authenticated, err := env.resolver.OptionalAuth(context.Background(), requestWithCookies(login.AccessToken, ""))
	require.NoError(t, err)
	assert.True(t, authenticated.Authenticated())

	anonymous, err := env.resolver.OptionalAuth(context.Background(), requestWithCookies("", ""))
	require.NoError(t, err)
	assert.False(t, anonymous.Authenticated())
}
