package dto

import (
	"fmt"
	"time"

	"github.com/avlek/shopledger/internal/domain"
	"github.com/avlek/shopledger/internal/usecase"
)

// UserResponse represents a user account in API responses.
type UserResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Balance   int64       `json:"balance"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// UserFromDomain converts domain user to response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Balance:   u.Balance,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// ItemResponse represents a catalog item in API responses.
type ItemResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Stock     int64     `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemFromDomain converts domain item to response.
func ItemFromDomain(i *domain.Item) *ItemResponse {
	return &ItemResponse{
		ID:        i.ID,
		Name:      i.Name,
		Price:     i.Price,
		Stock:     i.Stock,
		CreatedAt: i.CreatedAt,
	}
}

// ItemsFromDomain converts domain items to responses.
func ItemsFromDomain(items []*domain.Item) []*ItemResponse {
	result := make([]*ItemResponse, len(items))
	for i, item := range items {
		result[i] = ItemFromDomain(item)
	}
	return result
}

// ListItemsResponse represents the item catalog.
type ListItemsResponse struct {
	Items []*ItemResponse `json:"items"`
	Total int64           `json:"total"`
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	ItemID    *string          `json:"item_id,omitempty"`
	Amount    int64            `json:"amount"`
	Kind      domain.EntryKind `json:"kind"`
	CreatedAt time.Time        `json:"created_at"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		ItemID:    e.ItemID,
		Amount:    e.Amount,
		Kind:      e.Kind,
		CreatedAt: e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse represents a page of ledger entries.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// BalanceResponse represents the caller's wallet balance.
type BalanceResponse struct {
	Username string `json:"username"`
	Balance  int64  `json:"balance"`
}

// SpendResponse represents the outcome of a wallet spend.
type SpendResponse struct {
	Message    string `json:"message"`
	NewBalance int64  `json:"new_balance"`
}

// CreditResponse represents the outcome of an admin wallet credit.
type CreditResponse struct {
	Message    string `json:"message"`
	User       string `json:"user"`
	NewBalance int64  `json:"new_balance"`
}

// PurchaseResponse represents the outcome of a purchase.
type PurchaseResponse struct {
	Message       string `json:"message"`
	NewBalance    int64  `json:"new_balance"`
	ItemStockLeft int64  `json:"item_stock_left"`
}

// PurchaseFromResult converts a use case purchase result to response.
func PurchaseFromResult(r *usecase.PurchaseResult) *PurchaseResponse {
	return &PurchaseResponse{
		Message:       fmt.Sprintf("Successfully purchased %s", r.Item.Name),
		NewBalance:    r.NewBalance,
		ItemStockLeft: r.StockLeft,
	}
}

// VerifyResponse represents a ledger reconciliation check.
type VerifyResponse struct {
	UserID     string `json:"user_id"`
	Balance    int64  `json:"balance"`
	EntrySum   int64  `json:"entry_sum"`
	EntryCount int64  `json:"entry_count"`
	Consistent bool   `json:"consistent"`
}

// VerifyFromResult converts a use case verify result to response.
func VerifyFromResult(r *usecase.VerifyResult) *VerifyResponse {
	return &VerifyResponse{
		UserID:     r.UserID,
		Balance:    r.Balance,
		EntrySum:   r.EntrySum,
		EntryCount: r.EntryCount,
		Consistent: r.Consistent,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
