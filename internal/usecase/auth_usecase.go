// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"glowbeauty/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new customer.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput defines the data required for a customer to log in.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created customer's public identity.
// Registration never issues tokens; a fresh login is always required.
type RegisterOutput struct {
	Identity *entity.Identity
}

// LoginOutput returns the generated token pair after a successful login.
type LoginOutput struct {
	Identity     *entity.Identity
	AccessToken  string
	RefreshToken string
}

// RefreshOutput returns the rotated token pair after a successful
// silent refresh.
type RefreshOutput struct {
	Identity     *entity.Identity
	AccessToken  string
	RefreshToken string
}

// AuthUsecase defines the interface for customer authentication operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Refresh(ctx context.Context, refreshToken string) (*RefreshOutput, error)
	Logout(ctx context.Context, customerID int64) error
}
