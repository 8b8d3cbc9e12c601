// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"glowbeauty/config"
	"glowbeauty/internal/domain/entity"
	"glowbeauty/internal/domain/service"
)

// Fixed issuer/audience claims stamped into every token.
const (
	tokenIssuer   = "beauty-ecommerce"
	tokenAudience = "customer"
)

// jwtCodec is a concrete implementation of the TokenCodec interface using the JWT standard.
// Each token class is signed with its own secret, so a leaked access
// signing key cannot mint long-lived refresh tokens and vice versa.
type jwtCodec struct {
	accessSecret  string        // Secret key for signing access tokens.
	refreshSecret string        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
}

// NewJWTCodec is the constructor for jwtCodec.
// It takes configuration values to create a new token codec instance.
func NewJWTCodec(cfg *config.Config) (service.TokenCodec, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	return &jwtCodec{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     cfg.AccessTokenTTL(),
		refreshTTL:    cfg.RefreshTokenTTL(),
	}, nil
}

// IssueAccess creates a short-lived access token for the identity.
func (c *jwtCodec) IssueAccess(identity *entity.Identity) (string, error) {
	return c.issue(identity, service.TokenTypeAccess, c.accessTTL, c.accessSecret)
}

// IssueRefresh creates a long-lived refresh token for the identity.
func (c *jwtCodec) IssueRefresh(identity *entity.Identity) (string, error) {
	return c.issue(identity, service.TokenTypeRefresh, c.refreshTTL, c.refreshSecret)
}

// VerifyAccess validates an access-class token. Expected failures
// (expired, malformed, wrong class, bad signature) report ok=false.
func (c *jwtCodec) VerifyAccess(token string) (*service.TokenClaims, bool) {
	return c.verify(token, service.TokenTypeAccess, c.accessSecret)
}

// VerifyRefresh validates a refresh-class token.
func (c *jwtCodec) VerifyRefresh(token string) (*service.TokenClaims, bool) {
	return c.verify(token, service.TokenTypeRefresh, c.refreshSecret)
}

// issue is a private helper to create a JWT with the session claims.
func (c *jwtCodec) issue(identity *entity.Identity, tokenType string, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := &service.TokenClaims{
		CustomerID: identity.CustomerID,
		Email:      identity.Email,
		Type:       tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			Subject:   strconv.FormatInt(identity.CustomerID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// verify is a private helper validating signature, issuer, audience,
// expiry and the class tag against a class-specific secret.
func (c *jwtCodec) verify(tokenString, wantType, secret string) (*service.TokenClaims, bool) {
	claims := &service.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, false
	}

	// A refresh token signed with the refresh secret but presented as an
	// access token (or vice versa) must not pass.
	if claims.Type != wantType {
		return nil, false
	}

	return claims, true
}
