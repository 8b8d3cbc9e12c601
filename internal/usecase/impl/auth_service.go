// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "glowbeauty/internal/delivery/context"
	"glowbeauty/internal/domain/entity"
	domainerrors "glowbeauty/internal/domain/errors"
	"glowbeauty/internal/domain/repository"
	"glowbeauty/internal/domain/service"
	"glowbeauty/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	directory repository.CustomerDirectory
	hasher    service.PasswordHasher
	codec     service.TokenCodec
	logger    *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Directory repository.CustomerDirectory
	Hasher    service.PasswordHasher
	Codec     service.TokenCodec
	Logger    *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		directory: params.Directory,
		hasher:    params.Hasher,
		codec:     params.Codec,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete customer registration process.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	name := sanitizeText(input.Name)
	email := normalizeEmail(input.Email)

	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	if violations := registrationViolations(name, email, input.Password); len(violations) > 0 {
		srv.log(ctx).Warn("Registration input rejected", slog.String("email", email), slog.Int("violations", len(violations)))

		return nil, domainerrors.NewValidationError(violationMessage(violations))
	}

	if _, err := srv.directory.FindByEmail(ctx, email); err == nil {
		srv.log(ctx).Warn("Registration for taken email", slog.String("email", email))

		return nil, domainerrors.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrCustomerNotFound) {
		return nil, errors.Wrap(err, "failed to check email availability")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	customer := &entity.Customer{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := srv.directory.Create(ctx, customer); err != nil {
		// A racing registration can slip past the availability check;
		// the directory's uniqueness constraint is the authority.
		if errors.Is(err, repository.ErrDuplicateAccount) {
			return nil, domainerrors.ErrEmailTaken
		}

		srv.log(ctx).Error("Failed to create customer", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create customer during registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Int64("customerID", customer.ID))

	return &usecase.RegisterOutput{Identity: customer.Identity()}, nil
}

// Login orchestrates the customer login process.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := normalizeEmail(input.Email)

	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	if violations := loginViolations(email, input.Password); len(violations) > 0 {
		return nil, domainerrors.NewValidationError(violationMessage(violations))
	}

	customer, err := srv.directory.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			// Same message as a wrong password so the response does not
			// reveal which emails have accounts.
			srv.log(ctx).Warn("Login for unknown email", slog.String("email", email))

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to load customer for login")
	}

	if !srv.hasher.Check(input.Password, customer.PasswordHash) {
		srv.log(ctx).Warn("Login password mismatch", slog.Int64("customerID", customer.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	identity := customer.Identity()

	accessToken, err := srv.codec.IssueAccess(identity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}
	refreshToken, err := srv.codec.IssueRefresh(identity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	// The stored refresh token is the single live session anchor; a
	// login on another device replaces it and orphans the old cookie.
	if err := srv.directory.SetRefreshToken(ctx, customer.ID, refreshToken); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token during login")
	}

	if err := srv.directory.UpdateLastLogin(ctx, customer.ID); err != nil {
		// Losing the timestamp must not fail an otherwise valid login.
		srv.log(ctx).Warn("Failed to stamp last login", slog.Int64("customerID", customer.ID), slog.Any("error", err))
	}

	srv.log(ctx).Debug("Customer logged in", slog.Int64("customerID", customer.ID))

	return &usecase.LoginOutput{
		Identity:     identity,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh rotates the presented refresh token for a fresh pair. The
// presented token must equal the stored one exactly; superseded tokens
// fail closed and force a new login.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.RefreshOutput, error) {
	srv.log(ctx).Debug("Attempting session refresh")

	if refreshToken == "" {
		return nil, domainerrors.ErrSessionExpired
	}

	customer, err := srv.directory.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			srv.log(ctx).Warn("Refresh with unrecognized token")

			return nil, domainerrors.ErrSessionExpired
		}

		return nil, errors.Wrap(err, "failed to look up refresh token")
	}

	identity := customer.Identity()

	accessToken, err := srv.codec.IssueAccess(identity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}
	newRefreshToken, err := srv.codec.IssueRefresh(identity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	// Compare-and-swap against the token we matched on. If a concurrent
	// refresh already rotated it, this request loses and fails closed.
	if err := srv.directory.RotateRefreshToken(ctx, customer.ID, newRefreshToken, refreshToken); err != nil {
		if errors.Is(err, repository.ErrStaleRefreshToken) || errors.Is(err, repository.ErrCustomerNotFound) {
			srv.log(ctx).Warn("Lost refresh rotation race", slog.Int64("customerID", customer.ID))

			return nil, domainerrors.ErrSessionExpired
		}

		return nil, errors.Wrap(err, "failed to rotate refresh token")
	}

	srv.log(ctx).Debug("Session refreshed", slog.Int64("customerID", customer.ID))

	return &usecase.RefreshOutput{
		Identity:     identity,
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout invalidates the customer's server-side session. Logging out an
// already logged-out or unknown customer succeeds; the end state is the
// same either way.
func (srv *authService) Logout(ctx context.Context, customerID int64) error {
	srv.log(ctx).Info("Logging out", slog.Int64("customerID", customerID))

	if err := srv.directory.ClearRefreshToken(ctx, customerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to clear refresh token")
	}

	return nil
}
