package domain

import (
	"errors"
	"time"
)

// User represents a registered account holding a wallet balance.
// Balance is stored in minor currency units and never goes negative.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Balance      int64
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanDebit checks if the balance covers amount.
func (u *User) CanDebit(amount int64) error {
	if u.Balance < amount {
		return ErrInsufficientFunds
	}
	return nil
}

// Role represents a user's access level.
type Role string

const (
	// RoleUser is the default role for registered accounts.
	RoleUser Role = "user"

	// RoleAdmin can create items and credit wallets.
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is a known role.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// IsAdmin checks if the role grants privileged operations.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
