// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Customer is the credential record of a storefront account. It is the
// single persisted document the authentication core reads and writes;
// the password hash and current refresh token never leave the server
// boundary.
type Customer struct {
	ID            int64      // Sequential account id, assigned by the directory starting at 1.
	Name          string     // The customer's display name.
	Email         string     // Unique, case-normalized login identifier.
	PasswordHash  string     // bcrypt hash of the customer's password.
	EmailVerified bool       // Whether the customer has confirmed their email address.
	LastLoginAt   *time.Time // Timestamp of the most recent successful login, nil before the first one.
	RefreshToken  string     // The single currently-valid refresh token; empty when logged out.
	OrderCount    int        // Order statistics, maintained by the order service.
	TotalSpent    float64    // Order statistics, maintained by the order service.
	CreatedAt     time.Time  // Timestamp of when this account was created.
	UpdatedAt     time.Time  // Timestamp of the last modification to this record.
}

// Identity is the redacted, request-scoped projection of a Customer.
// It is rebuilt on every successful session resolution and is the only
// account shape handlers ever see.
type Identity struct {
	CustomerID    int64  `json:"customerId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
}

// Identity returns the redacted projection of the customer record.
func (c *Customer) Identity() *Identity {
	return &Identity{
		CustomerID:    c.ID,
		Name:          c.Name,
		Email:         c.Email,
		EmailVerified: c.EmailVerified,
	}
}
