package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/avlek/shopledger/internal/adapter/http/dto"
	"github.com/avlek/shopledger/internal/domain"
	"github.com/avlek/shopledger/internal/usecase"
)

type catalogServiceStub struct {
	getFn  func(ctx context.Context, id string) (*domain.Item, error)
	listFn func(ctx context.Context) ([]*domain.Item, error)
}

func (s *catalogServiceStub) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	return s.getFn(ctx, id)
}

func (s *catalogServiceStub) ListItems(ctx context.Context) ([]*domain.Item, error) {
	return s.listFn(ctx)
}

type purchaseServiceStub struct {
	purchaseFn func(ctx context.Context, userID, itemID string) (*usecase.PurchaseResult, error)
}

func (s *purchaseServiceStub) Purchase(ctx context.Context, userID, itemID string) (*usecase.PurchaseResult, error) {
	return s.purchaseFn(ctx, userID, itemID)
}

// withURLParam attaches a chi route parameter to the request.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestItemHandler_List(t *testing.T) {
	items := []*domain.Item{
		{ID: "item-1", Name: "Book", Price: 50, Stock: 20},
		{ID: "item-2", Name: "Pen", Price: 10, Stock: 100},
	}

	handler := NewItemHandler(&catalogServiceStub{
		listFn: func(ctx context.Context) ([]*domain.Item, error) {
			return items, nil
		},
	}, &purchaseServiceStub{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ListItemsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 || len(resp.Items) != 2 {
		t.Fatalf("expected 2 items, got %+v", resp)
	}
	if resp.Items[0].Name != "Book" {
		t.Fatalf("expected first item Book, got %s", resp.Items[0].Name)
	}
}

func TestItemHandler_Get_NotFound(t *testing.T) {
	handler := NewItemHandler(&catalogServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Item, error) {
			return nil, domain.ErrItemNotFound
		},
	}, &purchaseServiceStub{}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/items/nope", nil), "id", "nope")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestItemHandler_Purchase_Success(t *testing.T) {
	var gotUserID, gotItemID string

	handler := NewItemHandler(&catalogServiceStub{}, &purchaseServiceStub{
		purchaseFn: func(ctx context.Context, userID, itemID string) (*usecase.PurchaseResult, error) {
			gotUserID = userID
			gotItemID = itemID
			return &usecase.PurchaseResult{
				Item:       &domain.Item{ID: itemID, Name: "Book", Price: 50, Stock: 19},
				NewBalance: 50,
				StockLeft:  19,
			}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/items/item-1/purchase", nil)
	req = withUser(withURLParam(req, "id", "item-1"), &domain.User{ID: "user-1"})
	rec := httptest.NewRecorder()

	handler.Purchase(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUserID != "user-1" || gotItemID != "item-1" {
		t.Fatalf("expected purchase of item-1 by user-1, got %s by %s", gotItemID, gotUserID)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["new_balance"] != float64(50) {
		t.Fatalf("expected new_balance 50, got %v", resp["new_balance"])
	}
	if resp["item_stock_left"] != float64(19) {
		t.Fatalf("expected item_stock_left 19, got %v", resp["item_stock_left"])
	}
	if resp["message"] != "Successfully purchased Book" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestItemHandler_Purchase_OutOfStock(t *testing.T) {
	handler := NewItemHandler(&catalogServiceStub{}, &purchaseServiceStub{
		purchaseFn: func(ctx context.Context, userID, itemID string) (*usecase.PurchaseResult, error) {
			return nil, domain.ErrOutOfStock
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/items/item-1/purchase", nil)
	req = withUser(withURLParam(req, "id", "item-1"), &domain.User{ID: "user-1"})
	rec := httptest.NewRecorder()

	handler.Purchase(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestItemHandler_Purchase_InsufficientFunds(t *testing.T) {
	handler := NewItemHandler(&catalogServiceStub{}, &purchaseServiceStub{
		purchaseFn: func(ctx context.Context, userID, itemID string) (*usecase.PurchaseResult, error) {
			return nil, domain.ErrInsufficientFunds
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/items/item-1/purchase", nil)
	req = withUser(withURLParam(req, "id", "item-1"), &domain.User{ID: "user-1"})
	rec := httptest.NewRecorder()

	handler.Purchase(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestItemHandler_Purchase_Unauthenticated(t *testing.T) {
	handler := NewItemHandler(&catalogServiceStub{}, &purchaseServiceStub{
		purchaseFn: func(ctx context.Context, userID, itemID string) (*usecase.PurchaseResult, error) {
			t.Fatal("Purchase should not be called without a user")
			return nil, nil
		},
	}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodPost, "/items/item-1/purchase", nil), "id", "item-1")
	rec := httptest.NewRecorder()

	handler.Purchase(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
