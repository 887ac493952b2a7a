package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avlek/shopledger/internal/adapter/http/dto"
	"github.com/avlek/shopledger/internal/adapter/http/middleware"
	"github.com/avlek/shopledger/internal/domain"
	"github.com/avlek/shopledger/internal/infrastructure/metrics"
	"github.com/avlek/shopledger/internal/usecase"
)

// CatalogService defines the catalog behavior needed by ItemHandler.
type CatalogService interface {
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]*domain.Item, error)
}

// PurchaseService defines the purchase behavior needed by ItemHandler.
type PurchaseService interface {
	Purchase(ctx context.Context, userID, itemID string) (*usecase.PurchaseResult, error)
}

// ItemHandler handles catalog HTTP requests.
type ItemHandler struct {
	catalogUC  CatalogService
	purchaseUC PurchaseService
	metrics    *metrics.Metrics
}

// NewItemHandler creates a new ItemHandler. metrics may be nil.
func NewItemHandler(catalogUC CatalogService, purchaseUC PurchaseService, m *metrics.Metrics) *ItemHandler {
	return &ItemHandler{
		catalogUC:  catalogUC,
		purchaseUC: purchaseUC,
		metrics:    m,
	}
}

// List lists all catalog items.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalogUC.ListItems(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to list items")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListItemsResponse{
		Items: dto.ItemsFromDomain(items),
		Total: int64(len(items)),
	})
}

// Get retrieves an item by ID.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing item ID", "")
		return
	}

	item, err := h.catalogUC.GetItem(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get item")
		return
	}

	writeJSON(w, http.StatusOK, dto.ItemFromDomain(item))
}

// Purchase buys one unit of an item for the caller.
func (h *ItemHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing item ID", "")
		return
	}

	result, err := h.purchaseUC.Purchase(r.Context(), user.ID, id)
	if err != nil {
		if h.metrics != nil {
			switch {
			case errors.Is(err, domain.ErrInsufficientFunds):
				h.metrics.LedgerRejections.WithLabelValues("insufficient_funds").Inc()
			case errors.Is(err, domain.ErrOutOfStock):
				h.metrics.LedgerRejections.WithLabelValues("out_of_stock").Inc()
			}
		}
		writeDomainError(w, err, "failed to purchase item")
		return
	}

	if h.metrics != nil {
		h.metrics.PurchasesCompleted.Inc()
		h.metrics.LedgerAmount.WithLabelValues(string(domain.KindPurchase)).Observe(float64(result.Item.Price))
	}

	writeJSON(w, http.StatusOK, dto.PurchaseFromResult(result))
}
