// Package memory provides an in-memory customer directory with the same
// semantics as the MongoDB implementation. It backs the test suite and
// local development without a database.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"glowbeauty/internal/domain/entity"
	"glowbeauty/internal/domain/repository"
)

// customerDirectory implements the repository.CustomerDirectory interface
// over a mutex-guarded map.
type customerDirectory struct {
	mu   sync.RWMutex
	byID map[int64]*entity.Customer
}

// NewCustomerDirectory is the constructor for the in-memory directory.
func NewCustomerDirectory() repository.CustomerDirectory {
	return &customerDirectory{
		byID: make(map[int64]*entity.Customer),
	}
}

// FindByID retrieves a single customer by their account id.
func (d *customerDirectory) FindByID(ctx context.Context, id int64) (*entity.Customer, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	customer, ok := d.byID[id]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}

	return clone(customer), nil
}

// FindByEmail retrieves a single customer by case-normalized email.
func (d *customerDirectory) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	needle := normalizeEmail(email)

	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, customer := range d.byID {
		if normalizeEmail(customer.Email) == needle {
			return clone(customer), nil
		}
	}

	return nil, repository.ErrCustomerNotFound
}

// FindByRefreshToken retrieves the customer whose stored refresh token
// equals the presented one.
func (d *customerDirectory) FindByRefreshToken(ctx context.Context, token string) (*entity.Customer, error) {
	if token == "" {
		// An empty token must never match logged-out records.
		return nil, repository.ErrCustomerNotFound
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, customer := range d.byID {
		if customer.RefreshToken == token {
			return clone(customer), nil
		}
	}

	return nil, repository.ErrCustomerNotFound
}

// Create persists a new customer record, assigning the next sequential
// account id (max existing + 1, starting at 1).
func (d *customerDirectory) Create(ctx context.Context, customer *entity.Customer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	needle := normalizeEmail(customer.Email)
	var maxID int64
	for id, existing := range d.byID {
		if normalizeEmail(existing.Email) == needle {
			return repository.ErrDuplicateAccount
		}
		if id > maxID {
			maxID = id
		}
	}

	now := time.Now()
	customer.ID = maxID + 1
	customer.Email = needle
	customer.CreatedAt = now
	customer.UpdatedAt = now
	d.byID[customer.ID] = clone(customer)

	return nil
}

// SetRefreshToken overwrites the stored refresh token unconditionally.
func (d *customerDirectory) SetRefreshToken(ctx context.Context, id int64, token string) error {
	return d.update(id, func(customer *entity.Customer) error {
		customer.RefreshToken = token

		return nil
	})
}

// RotateRefreshToken atomically replaces the stored refresh token only if
// it still equals expectedOld.
func (d *customerDirectory) RotateRefreshToken(ctx context.Context, id int64, newToken, expectedOld string) error {
	return d.update(id, func(customer *entity.Customer) error {
		if customer.RefreshToken != expectedOld {
			return repository.ErrStaleRefreshToken
		}
		customer.RefreshToken = newToken

		return nil
	})
}

// ClearRefreshToken removes the stored refresh token; clearing an
// already-empty field is a no-op.
func (d *customerDirectory) ClearRefreshToken(ctx context.Context, id int64) error {
	return d.update(id, func(customer *entity.Customer) error {
		customer.RefreshToken = ""

		return nil
	})
}

// UpdateLastLogin stamps the record with the current time.
func (d *customerDirectory) UpdateLastLogin(ctx context.Context, id int64) error {
	return d.update(id, func(customer *entity.Customer) error {
		now := time.Now()
		customer.LastLoginAt = &now

		return nil
	})
}

func (d *customerDirectory) update(id int64, mutate func(*entity.Customer) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	customer, ok := d.byID[id]
	if !ok {
		return repository.ErrCustomerNotFound
	}

	if err := mutate(customer); err != nil {
		return err
	}
	customer.UpdatedAt = time.Now()

	return nil
}

func clone(customer *entity.Customer) *entity.Customer {
	copied := *customer
	if customer.LastLoginAt != nil {
		at := *customer.LastLoginAt
		copied.LastLoginAt = &at
	}

	return &copied
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
