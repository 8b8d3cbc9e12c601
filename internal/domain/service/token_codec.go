package service

import (
	"github.com/golang-jwt/jwt/v5"

	"glowbeauty/internal/domain/entity"
)

// Token class tags embedded in every issued token. A token verified
// under one class's secret must also carry that class's tag; cross-class
// tokens are rejected even when the signature checks out.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenClaims is the payload carried by both token classes.
type TokenClaims struct {
	CustomerID int64  `json:"customerId"`
	Email      string `json:"email"`
	Type       string `json:"type"`
	jwt.RegisteredClaims
}

// TokenCodec creates and verifies the signed, time-boxed session tokens.
// Verification never panics and reports expected failures (expired,
// malformed, wrong class, bad signature) as ok=false, not as errors.
type TokenCodec interface {
	// IssueAccess creates a short-lived access token for the identity.
	IssueAccess(identity *entity.Identity) (string, error)

	// IssueRefresh creates a long-lived refresh token for the identity.
	IssueRefresh(identity *entity.Identity) (string, error)

	// VerifyAccess validates signature, issuer, audience, expiry and the
	// access class tag. Returns the claims and true only when all pass.
	VerifyAccess(token string) (*TokenClaims, bool)

	// VerifyRefresh is the refresh-class counterpart of VerifyAccess.
	VerifyRefresh(token string) (*TokenClaims, bool)
}
