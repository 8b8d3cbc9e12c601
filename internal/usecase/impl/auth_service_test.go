package impl

import (
	"context"
	"testing"

	domainerrors "glowbeauty/internal/domain/errors"
	"glowbeauty/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	env := newTestEnv(t)

	out := env.register(t)
	require.NotNil(t, out.Identity)
	assert.Equal(t, int64(1), out.Identity.CustomerID)
	assert.Equal(t, testName, out.Identity.Name)
	assert.Equal(t, testEmail, out.Identity.Email)
	assert.False(t, out.Identity.EmailVerified)

	stored, err := env.directory.FindByEmail(context.Background(), testEmail)
	require.NoError(t, err)
	assert.NotEqual(t, testPassword, stored.PasswordHash, "password must be stored hashed")
	assert.True(t, env.hasher.Check(testPassword, stored.PasswordHash))
	assert.Empty(t, stored.RefreshToken, "registration must not open a session")
}

func TestAuthService_RegisterSanitizesInput(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.auth.Register(context.Background(), &usecase.RegisterInput{
		Name:     "  <Jane> Doe  ",
		Email:    "  JANE@Glow.Example ",
		Password: testPassword,
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", out.Identity.Name)
	assert.Equal(t, "jane@glow.example", out.Identity.Email)
}

func TestAuthService_RegisterReportsEveryViolation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(context.Background(), &usecase.RegisterInput{
		Name:     "J",
		Email:    "not-an-email",
		Password: "short",
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode())
	assert.Contains(t, appErr.Message(), "Name must be at least 2 characters")
	assert.Contains(t, appErr.Message(), "Please enter a valid email address")
	assert.Contains(t, appErr.Message(), "Password must be at least 8 characters")
	assert.Contains(t, appErr.Message(), "Password must contain an uppercase letter")
	assert.Contains(t, appErr.Message(), "Password must contain a number")
	assert.Contains(t, appErr.Message(), "Password must contain a special character")
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t)

	_, err := env.auth.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Other Jane",
		Email:    "JANE@glow.example",
		Password: testPassword,
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	env.register(t)

	out := env.login(t)
	require.NotNil(t, out.Identity)
	assert.Equal(t, testEmail, out.Identity.Email)

	accessClaims, ok := env.codec.VerifyAccess(out.AccessToken)
	require.True(t, ok)
	assert.Equal(t, out.Identity.CustomerID, accessClaims.CustomerID)

	refreshClaims, ok := env.codec.VerifyRefresh(out.RefreshToken)
	require.True(t, ok)
	assert.Equal(t, out.Identity.CustomerID, refreshClaims.CustomerID)

	stored, err := env.directory.FindByID(context.Background(), out.Identity.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, out.RefreshToken, stored.RefreshToken, "the issued refresh token anchors the session")
	assert.NotNil(t, stored.LastLoginAt)
}

func TestAuthService_LoginUniformCredentialFailures(t *testing.T) {
	env := newTestEnv(t)
	env.register(t)

	_, unknownErr := env.auth.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@glow.example",
		Password: testPassword,
	})
	_, wrongErr := env.auth.Login(context.Background(), &usecase.LoginInput{
		Email:    testEmail,
		Password: "Wr0ng!pass",
	})

	assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, domainerrors.ErrInvalidCredentials)

	// Unknown email and wrong password must be indistinguishable to the
	// client, or the login form becomes an account oracle.
	var unknownApp, wrongApp domainerrors.AppError
	require.ErrorAs(t, unknownErr, &unknownApp)
	require.ErrorAs(t, wrongErr, &wrongApp)
	assert.Equal(t, unknownApp.Message(), wrongApp.Message())
	assert.Equal(t, unknownApp.HTTPCode(), wrongApp.HTTPCode())
}

func TestAuthService_LoginRejectsMalformedInput(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Login(context.Background(), &usecase.LoginInput{
		Email:    "not-an-email",
		Password: "",
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode(), "bad shape is a validation failure, not a credential failure")
	assert.Contains(t, appErr.Message(), "Please enter a valid email address")
	assert.Contains(t, appErr.Message(), "Password is required")
}

func TestAuthService_RefreshRotatesToken(t *testing.T) {
	env := newTestEnv(t)
	env.register(t)
	login := env.login(t)

	out, err := env.auth.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, login.Identity.CustomerID, out.Identity.CustomerID)
	assert.NotEqual(t, login.RefreshToken, out.RefreshToken)

	_, ok := env.codec.VerifyAccess(out.AccessToken)
	assert.True(t, ok)

	// The superseded token must be dead after rotation.
	_, err = env.auth.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)

	// The rotated token keeps working.
	_, err = env.auth.Refresh(context.Background(), out.RefreshToken)
	assert.NoError(t, err)
}

func TestAuthService_RefreshUnknownToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Refresh(context.Background(), "never-issued")
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)

	_, err = env.auth.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)
}

func TestAuthService_Logout(t *testing.T) {
	env := newTestEnv(t)
	env.register(t)
	login := env.login(t)

	require.NoError(t, env.auth.Logout(context.Background(), login.Identity.CustomerID))

	// The cleared token cannot refresh the session anymore.
	_, err := env.auth.Refresh(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)

	// Logging out again, or for an account that never existed, still
	// succeeds; the end state is identical.
	assert.NoError(t, env.auth.Logout(context.Background(), login.Identity.CustomerID))
	assert.NoError(t, env.auth.Logout(context.Background(), 404))
}
