// Package session implements cookie-based session transport. The two
// token cookies are the entire session state; there is no server-side
// session table.
package session

import (
	"net/http"
	"time"

	"glowbeauty/config"
	"glowbeauty/internal/domain/service"
)

// sessionCookies is a concrete implementation of the SessionCookies
// interface on top of net/http cookie serialization.
type sessionCookies struct {
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewSessionCookies is the constructor for sessionCookies. Cookies are
// marked Secure only in production so local development over plain HTTP
// keeps working.
func NewSessionCookies(cfg *config.Config) service.SessionCookies {
	return &sessionCookies{
		secure:     cfg.IsProduction(),
		accessTTL:  cfg.AccessTokenTTL(),
		refreshTTL: cfg.RefreshTokenTTL(),
	}
}

// WriteSessionCookies serializes both token cookies into Set-Cookie
// headers with class-appropriate max ages.
func (s *sessionCookies) WriteSessionCookies(accessToken, refreshToken string) http.Header {
	header := http.Header{}
	header.Add("Set-Cookie", s.cookie(service.AccessCookieName, accessToken, int(s.accessTTL.Seconds())).String())
	header.Add("Set-Cookie", s.cookie(service.RefreshCookieName, refreshToken, int(s.refreshTTL.Seconds())).String())

	return header
}

// ClearSessionCookies expires both token cookies.
func (s *sessionCookies) ClearSessionCookies() http.Header {
	header := http.Header{}
	header.Add("Set-Cookie", s.cookie(service.AccessCookieName, "", -1).String())
	header.Add("Set-Cookie", s.cookie(service.RefreshCookieName, "", -1).String())

	return header
}

// ReadAccessCookie parses the access token cookie from the request.
func (s *sessionCookies) ReadAccessCookie(r *http.Request) (string, bool) {
	return readCookie(r, service.AccessCookieName)
}

// ReadRefreshCookie parses the refresh token cookie from the request.
func (s *sessionCookies) ReadRefreshCookie(r *http.Request) (string, bool) {
	return readCookie(r, service.RefreshCookieName)
}

func (s *sessionCookies) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func readCookie(r *http.Request, name string) (string, bool) {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		// A missing cookie is routine, not an error.
		return "", false
	}

	return cookie.Value, true
}
