package service

import "net/http"

// Cookie names used for the two session token classes. The cookies are
// the whole session state; there is no server-side session table.
const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"
)

// SessionCookies maps tokens to and from HTTP cookie storage, enforcing
// per-class expiry and transport security flags. It works on plain
// net/http types so any routing layer can sit on top of it.
type SessionCookies interface {
	// WriteSessionCookies serializes both cookies with class-appropriate
	// max ages into a header set the caller attaches to its response.
	WriteSessionCookies(accessToken, refreshToken string) http.Header

	// ClearSessionCookies re-serializes both cookies expired and empty.
	ClearSessionCookies() http.Header

	// ReadAccessCookie parses the request's access cookie. Absence is not
	// an error, just ok=false.
	ReadAccessCookie(r *http.Request) (string, bool)

	// ReadRefreshCookie parses the request's refresh cookie.
	ReadRefreshCookie(r *http.Request) (string, bool)
}
