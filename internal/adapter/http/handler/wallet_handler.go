package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avlek/shopledger/internal/adapter/http/dto"
	"github.com/avlek/shopledger/internal/adapter/http/middleware"
	"github.com/avlek/shopledger/internal/domain"
	"github.com/avlek/shopledger/internal/infrastructure/metrics"
	"github.com/avlek/shopledger/internal/usecase"
)

// WalletService defines the behavior needed by WalletHandler.
type WalletService interface {
	Spend(ctx context.Context, userID string, amount int64) (int64, error)
	Balance(ctx context.Context, userID string) (*domain.User, error)
	ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.Entry, error)
	VerifyUser(ctx context.Context, userID string) (*usecase.VerifyResult, error)
}

// WalletHandler handles wallet-related HTTP requests.
type WalletHandler struct {
	walletUC WalletService
	metrics  *metrics.Metrics
}

// NewWalletHandler creates a new WalletHandler. metrics may be nil.
func NewWalletHandler(walletUC WalletService, m *metrics.Metrics) *WalletHandler {
	return &WalletHandler{walletUC: walletUC, metrics: m}
}

// Balance returns the caller's current wallet balance.
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	current, err := h.walletUC.Balance(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err, "failed to get balance")
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		Username: current.Username,
		Balance:  current.Balance,
	})
}

// Spend debits an amount from the caller's wallet.
func (h *WalletHandler) Spend(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.SpendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	newBalance, err := h.walletUC.Spend(r.Context(), user.ID, req.Amount)
	if err != nil {
		if h.metrics != nil && errors.Is(err, domain.ErrInsufficientFunds) {
			h.metrics.LedgerRejections.WithLabelValues("insufficient_funds").Inc()
		}
		writeDomainError(w, err, "failed to spend")
		return
	}

	if h.metrics != nil {
		h.metrics.SpendsCompleted.Inc()
		h.metrics.LedgerAmount.WithLabelValues(string(domain.KindSpend)).Observe(float64(req.Amount))
	}

	writeJSON(w, http.StatusOK, dto.SpendResponse{
		Message:    "Amount spent successfully",
		NewBalance: newBalance,
	})
}

// Transactions lists the caller's ledger entries, newest first.
func (h *WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	// Clamp before the call so the echoed page metadata matches the
	// page actually returned.
	limit, offset := domain.ValidatePagination(
		parseIntQuery(r, "limit", 20),
		parseIntQuery(r, "offset", 0),
	)

	entries, err := h.walletUC.ListEntries(r.Context(), usecase.ListEntriesInput{
		UserID: user.ID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeDomainError(w, err, "failed to list transactions")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Limit:   limit,
		Offset:  offset,
	})
}

// Verify reconciles the caller's balance against the ledger.
func (h *WalletHandler) Verify(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	result, err := h.walletUC.VerifyUser(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err, "failed to verify wallet")
		return
	}

	writeJSON(w, http.StatusOK, dto.VerifyFromResult(result))
}
