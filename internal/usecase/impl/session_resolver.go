package impl

import (
	"context"
	"log/slog"
	"net/http"

	deliverycontext "glowbeauty/internal/delivery/context"
	domainerrors "glowbeauty/internal/domain/errors"
	"glowbeauty/internal/domain/repository"
	"glowbeauty/internal/domain/service"
	"glowbeauty/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const loginLocation = "/login"

// sessionResolver implements the SessionResolver interface. It checks the
// access cookie first and only touches the directory's refresh path when
// the access token is missing or expired, keeping the hot path to a
// single signature check and one lookup.
type sessionResolver struct {
	directory repository.CustomerDirectory
	codec     service.TokenCodec
	cookies   service.SessionCookies
	auth      usecase.AuthUsecase
	logger    *slog.Logger
}

// SessionResolverParams holds dependencies for SessionResolver, injected by Fx.
type SessionResolverParams struct {
	fx.In

	Directory repository.CustomerDirectory
	Codec     service.TokenCodec
	Cookies   service.SessionCookies
	Auth      usecase.AuthUsecase
	Logger    *slog.Logger
}

// NewSessionResolver is the constructor for sessionResolver.
func NewSessionResolver(params SessionResolverParams) usecase.SessionResolver {
	return &sessionResolver{
		directory: params.Directory,
		codec:     params.Codec,
		cookies:   params.Cookies,
		auth:      params.Auth,
		logger:    params.Logger,
	}
}

func (srv *sessionResolver) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Resolve returns the current session for the request. The fast path
// verifies the access cookie; the slow path rotates the refresh token.
// Every expected failure degrades to an anonymous session.
func (srv *sessionResolver) Resolve(ctx context.Context, r *http.Request) (*usecase.Session, error) {
	if session, done, err := srv.resolveAccess(ctx, r); done {
		return session, err
	}

	return srv.resolveRefresh(ctx, r)
}

func (srv *sessionResolver) resolveAccess(ctx context.Context, r *http.Request) (*usecase.Session, bool, error) {
	token, ok := srv.cookies.ReadAccessCookie(r)
	if !ok {
		return nil, false, nil
	}

	claims, ok := srv.codec.VerifyAccess(token)
	if !ok {
		// Expired or malformed access token; fall through to the
		// refresh path instead of failing the request.
		return nil, false, nil
	}

	customer, err := srv.directory.FindByID(ctx, claims.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			// The account vanished after the token was minted. The
			// refresh path will fail the same way and the caller ends
			// up anonymous.
			srv.log(ctx).Warn("Access token for missing account", slog.Int64("customerID", claims.CustomerID))

			return nil, false, nil
		}

		return nil, true, errors.Wrap(err, "failed to load customer for session")
	}

	return &usecase.Session{Identity: customer.Identity()}, true, nil
}

func (srv *sessionResolver) resolveRefresh(ctx context.Context, r *http.Request) (*usecase.Session, error) {
	token, ok := srv.cookies.ReadRefreshCookie(r)
	if !ok {
		return &usecase.Session{}, nil
	}

	if _, ok := srv.codec.VerifyRefresh(token); !ok {
		srv.log(ctx).Debug("Refresh cookie failed verification")

		return &usecase.Session{}, nil
	}

	out, err := srv.auth.Refresh(ctx, token)
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) && appErr.HTTPCode() < http.StatusInternalServerError {
			// Stale or superseded token. The losing request of a
			// rotation race lands here and stays anonymous.
			srv.log(ctx).Debug("Silent refresh rejected", slog.String("code", appErr.ErrorCode()))

			return &usecase.Session{}, nil
		}

		return nil, errors.Wrap(err, "failed to refresh session")
	}

	return &usecase.Session{
		Identity: out.Identity,
		Headers:  srv.cookies.WriteSessionCookies(out.AccessToken, out.RefreshToken),
	}, nil
}

// RequireAuth resolves the session and turns an anonymous result into a
// redirect decision toward the login page. Cookie headers from a silent
// refresh are preserved on both outcomes.
func (srv *sessionResolver) RequireAuth(ctx context.Context, r *http.Request) (*usecase.AuthDecision, error) {
	session, err := srv.Resolve(ctx, r)
	if err != nil {
		return nil, err
	}

	if !session.Authenticated() {
		return &usecase.AuthDecision{
			Kind:     usecase.AuthKindRedirect,
			Location: loginLocation,
			Headers:  session.Headers,
		}, nil
	}

	return &usecase.AuthDecision{
		Kind:     usecase.AuthKindAuthenticated,
		Identity: session.Identity,
		Headers:  session.Headers,
	}, nil
}

// OptionalAuth resolves the session without guarding it.
func (srv *sessionResolver) OptionalAuth(ctx context.Context, r *http.Request) (*usecase.Session, error) {
	return srv.Resolve(ctx, r)
}
