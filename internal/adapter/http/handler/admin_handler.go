package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/avlek/shopledger/internal/adapter/http/dto"
	"github.com/avlek/shopledger/internal/domain"
	"github.com/avlek/shopledger/internal/infrastructure/metrics"
	"github.com/avlek/shopledger/internal/usecase"
)

// AdminCatalogService defines the catalog behavior needed by AdminHandler.
type AdminCatalogService interface {
	CreateItem(ctx context.Context, input usecase.CreateItemInput) (*domain.Item, error)
}

// CreditService defines the wallet behavior needed by AdminHandler.
type CreditService interface {
	Credit(ctx context.Context, userID string, amount int64) (int64, error)
	Balance(ctx context.Context, userID string) (*domain.User, error)
}

// AdminHandler handles admin-only HTTP requests.
type AdminHandler struct {
	catalogUC AdminCatalogService
	walletUC  CreditService
	metrics   *metrics.Metrics
}

// NewAdminHandler creates a new AdminHandler. metrics may be nil.
func NewAdminHandler(catalogUC AdminCatalogService, walletUC CreditService, m *metrics.Metrics) *AdminHandler {
	return &AdminHandler{
		catalogUC: catalogUC,
		walletUC:  walletUC,
		metrics:   m,
	}
}

// CreateItem creates a new catalog item.
func (h *AdminHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	item, err := h.catalogUC.CreateItem(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err, "failed to create item")
		return
	}

	writeJSON(w, http.StatusCreated, dto.ItemFromDomain(item))
}

// Credit adds funds to a user's wallet.
func (h *AdminHandler) Credit(w http.ResponseWriter, r *http.Request) {
	var req dto.CreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "missing user_id", "")
		return
	}

	user, err := h.walletUC.Balance(r.Context(), req.UserID)
	if err != nil {
		writeDomainError(w, err, "failed to credit wallet")
		return
	}

	newBalance, err := h.walletUC.Credit(r.Context(), req.UserID, req.Amount)
	if err != nil {
		writeDomainError(w, err, "failed to credit wallet")
		return
	}

	if h.metrics != nil {
		h.metrics.CreditsCompleted.Inc()
		h.metrics.LedgerAmount.WithLabelValues(string(domain.KindCredit)).Observe(float64(req.Amount))
	}

	writeJSON(w, http.StatusOK, dto.CreditResponse{
		Message:    "Wallet credited successfully.",
		User:       user.Username,
		NewBalance: newBalance,
	})
}
