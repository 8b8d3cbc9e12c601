// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"glowbeauty/internal/domain/entity"
)

// Domain-specific errors for customer persistence.
var (
	// ErrCustomerNotFound is returned when no customer matches the lookup.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrDuplicateAccount is returned when a create collides with an existing email.
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrStaleRefreshToken is returned when a rotation loses the compare-and-swap,
	// i.e. the stored refresh token no longer matches the presented one.
	ErrStaleRefreshToken = errors.New("refresh token superseded")
)

// CustomerDirectory is the persistent store of credential records. The
// authentication service and session resolver depend on this interface,
// never on a concrete database client.
type CustomerDirectory interface {
	// FindByID retrieves a single customer by their account id.
	FindByID(ctx context.Context, id int64) (*entity.Customer, error)

	// FindByEmail retrieves a single customer by case-normalized email.
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)

	// FindByRefreshToken retrieves the customer whose stored refresh token
	// equals the presented one. A superseded token finds nothing; this
	// equality lookup is the revocation mechanism, signature validity alone
	// is not sufficient.
	FindByRefreshToken(ctx context.Context, token string) (*entity.Customer, error)

	// Create persists a new customer record, assigning the next sequential
	// account id (max existing + 1, starting at 1) and enforcing email
	// uniqueness.
	Create(ctx context.Context, customer *entity.Customer) error

	// SetRefreshToken overwrites the stored refresh token, invalidating any
	// prior one.
	SetRefreshToken(ctx context.Context, id int64, token string) error

	// RotateRefreshToken atomically replaces the stored refresh token only
	// if it still equals expectedOld. Two requests racing to refresh the
	// same session cannot both win; the loser gets ErrStaleRefreshToken.
	RotateRefreshToken(ctx context.Context, id int64, newToken, expectedOld string) error

	// ClearRefreshToken removes the stored refresh token. Clearing an
	// already-empty field is not an error.
	ClearRefreshToken(ctx context.Context, id int64) error

	// UpdateLastLogin stamps the record with the current time.
	UpdateLastLogin(ctx context.Context, id int64) error
}
