package dto

import (
	"github.com/avlek/shopledger/internal/usecase"
)

// RegisterRequest represents a request to create an account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Username: r.Username,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Username: r.Username,
		Password: r.Password,
	}
}

// SpendRequest represents a request to debit the caller's wallet.
type SpendRequest struct {
	Amount int64 `json:"amount"`
}

// CreditRequest represents an admin request to credit a user's wallet.
type CreditRequest struct {
	UserID string `json:"user_id"`
	Amount int64  `json:"amount"`
}

// CreateItemRequest represents an admin request to create a catalog item.
type CreateItemRequest struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Stock int64  `json:"stock"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateItemRequest) ToUseCaseInput() usecase.CreateItemInput {
	return usecase.CreateItemInput{
		Name:  r.Name,
		Price: r.Price,
		Stock: r.Stock,
	}
}
