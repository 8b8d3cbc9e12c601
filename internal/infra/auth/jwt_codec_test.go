package auth

import (
	"testing"
	"time"

	"glowbeauty/config"
	"glowbeauty/internal/domain/entity"
	"glowbeauty/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodecConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func testIdentity() *entity.Identity {
	return &entity.Identity{
		CustomerID:    42,
		Name:          "Jane Doe",
		Email:         "jane@x.com",
		EmailVerified: true,
	}
}

func TestJWTCodec_IssueAndVerifyRoundTrip(t *testing.T) {
	codec, err := NewJWTCodec(newTestCodecConfig())
	require.NoError(t, err)

	identity := testIdentity()

	accessToken, err := codec.IssueAccess(identity)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	refreshToken, err := codec.IssueRefresh(identity)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshToken)

	accessClaims, ok := codec.VerifyAccess(accessToken)
	require.True(t, ok)
	assert.Equal(t, identity.CustomerID, accessClaims.CustomerID)
	assert.Equal(t, identity.Email, accessClaims.Email)
	assert.Equal(t, service.TokenTypeAccess, accessClaims.Type)
	assert.Equal(t, "beauty-ecommerce", accessClaims.Issuer)
	assert.Contains(t, accessClaims.Audience, "customer")

	refreshClaims, ok := codec.VerifyRefresh(refreshToken)
	require.True(t, ok)
	assert.Equal(t, identity.CustomerID, refreshClaims.CustomerID)
	assert.Equal(t, service.TokenTypeRefresh, refreshClaims.Type)
}

func TestJWTCodec_ClassIsolation(t *testing.T) {
	codec, err := NewJWTCodec(newTestCodecConfig())
	require.NoError(t, err)

	identity := testIdentity()

	accessToken, err := codec.IssueAccess(identity)
	require.NoError(t, err)
	refreshToken, err := codec.IssueRefresh(identity)
	require.NoError(t, err)

	// An access token presented as a refresh token must fail, and vice
	// versa, even though each carries a valid signature under its own key.
	claims, ok := codec.VerifyRefresh(accessToken)
	assert.False(t, ok)
	assert.Nil(t, claims)

	claims, ok = codec.VerifyAccess(refreshToken)
	assert.False(t, ok)
	assert.Nil(t, claims)
}

func TestJWTCodec_SameSecretCrossClass(t *testing.T) {
	// Even with identical secrets for both classes, the type claim alone
	// must keep the classes apart.
	cfg := &config.Config{}
	cfg.SecretKey.Access = "shared_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "shared_secret_key_very_long_for_testing"

	codec, err := NewJWTCodec(cfg)
	require.NoError(t, err)

	accessToken, err := codec.IssueAccess(testIdentity())
	require.NoError(t, err)

	_, ok := codec.VerifyRefresh(accessToken)
	assert.False(t, ok)
}

func TestJWTCodec_Expiry(t *testing.T) {
	// Built directly so the refresh TTL can be negative, which mints a
	// token that is already past its expiry.
	codec := &jwtCodec{
		accessSecret:  "test_access_secret_key_very_long_for_testing",
		refreshSecret: "test_refresh_secret_key_very_long_for_testing",
		accessTTL:     time.Hour,
		refreshTTL:    -time.Minute,
	}

	identity := testIdentity()

	accessToken, err := codec.IssueAccess(identity)
	require.NoError(t, err)
	_, ok := codec.VerifyAccess(accessToken)
	assert.True(t, ok, "token within its TTL must verify")

	refreshToken, err := codec.IssueRefresh(identity)
	require.NoError(t, err)
	_, ok = codec.VerifyRefresh(refreshToken)
	assert.False(t, ok, "token past its TTL must fail")
}

func TestJWTCodec_MalformedAndForeignTokens(t *testing.T) {
	codec, err := NewJWTCodec(newTestCodecConfig())
	require.NoError(t, err)

	for _, token := range []string{
		"",
		"clearly-not-a-jwt-token-format",
		"a.b.c",
	} {
		claims, ok := codec.VerifyAccess(token)
		assert.False(t, ok, "token %q must not verify", token)
		assert.Nil(t, claims)
	}

	// A token minted under different secrets fails signature validation.
	otherCfg := &config.Config{}
	otherCfg.SecretKey.Access = "some_entirely_different_access_secret"
	otherCfg.SecretKey.Refresh = "some_entirely_different_refresh_secret"
	other, err := NewJWTCodec(otherCfg)
	require.NoError(t, err)

	foreign, err := other.IssueAccess(testIdentity())
	require.NoError(t, err)

	_, ok := codec.VerifyAccess(foreign)
	assert.False(t, ok)
}

func TestJWTCodec_EmptySecrets(t *testing.T) {
	cfg := &config.Config{}

	codec, err := NewJWTCodec(cfg)
	assert.Error(t, err)
	assert.Nil(t, codec)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}
