package domain

import "errors"

var (
	// Wallet errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already registered")

	// Catalog errors
	ErrItemNotFound = errors.New("item not found")
	ErrOutOfStock   = errors.New("item out of stock")
	ErrInvalidPrice = errors.New("price must not be negative")
	ErrInvalidStock = errors.New("stock must not be negative")

	// ErrTransientFailure marks infrastructure-level failures (lock timeout,
	// deadlock, lost connection). The whole operation may be retried from
	// scratch; all other errors are terminal for the request.
	ErrTransientFailure = errors.New("transient failure, retry the operation")
)
