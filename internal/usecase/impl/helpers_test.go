package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"glowbeauty/config"
	"glowbeauty/internal/domain/repository"
	"glowbeauty/internal/domain/service"
	infraauth "glowbeauty/internal/infra/auth"
	"glowbeauty/internal/infra/persistence/memory"
	"glowbeauty/internal/infra/session"
	"glowbeauty/internal/usecase"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// testEnv wires the auth service and resolver over the in-memory
// directory with real crypto, so the tests cover the same paths the
// handlers exercise in production.
type testEnv struct {
	cfg       *config.Config
	directory repository.CustomerDirectory
	hasher    service.PasswordHasher
	codec     service.TokenCodec
	cookies   service.SessionCookies
	auth      usecase.AuthUsecase
	resolver  usecase.SessionResolver
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"
	cfg.Auth = &config.AuthConfig{BcryptCost: bcrypt.MinCost}

	return cfg
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := newTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	codec, err := infraauth.NewJWTCodec(cfg)
	require.NoError(t, err)

	directory := memory.NewCustomerDirectory()
	hasher := infraauth.NewBcryptHasher(cfg)
	cookies := session.NewSessionCookies(cfg)

	auth := NewAuthService(AuthServiceParams{
		Directory: directory,
		Hasher:    hasher,
		Codec:     codec,
		Logger:    logger,
	})

	resolver := NewSessionResolver(SessionResolverParams{
		Directory: directory,
		Codec:     codec,
		Cookies:   cookies,
		Auth:      auth,
		Logger:    logger,
	})

	return &testEnv{
		cfg:       cfg,
		directory: directory,
		hasher:    hasher,
		codec:     codec,
		cookies:   cookies,
		auth:      auth,
		resolver:  resolver,
	}
}

const (
	testName     = "Jane Doe"
	testEmail    = "jane@glow.example"
	testPassword = "Str0ng!pass"
)

func (env *testEnv) register(t *testing.T) *usecase.RegisterOutput {
	t.Helper()

	out, err := env.auth.Register(context.Background(), &usecase.RegisterInput{
		Name:     testName,
		Email:    testEmail,
		Password: testPassword,
	})
	require.NoError(t, err)

	return out
}

func (env *testEnv) login(t *testing.T) *usecase.LoginOutput {
	t.Helper()

	out, err := env.auth.Login(context.Background(), &usecase.LoginInput{
		Email:    testEmail,
		Password: testPassword,
	})
	require.NoError(t, err)

	return out
}
