package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avlek/shopledger/internal/adapter/http/dto"
	"github.com/avlek/shopledger/internal/domain"
	"github.com/avlek/shopledger/internal/usecase"
)

type walletServiceStub struct {
	spendFn       func(ctx context.Context, userID string, amount int64) (int64, error)
	balanceFn     func(ctx context.Context, userID string) (*domain.User, error)
	listEntriesFn func(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.Entry, error)
	verifyFn      func(ctx context.Context, userID string) (*usecase.VerifyResult, error)
}

func (s *walletServiceStub) Spend(ctx context.Context, userID string, amount int64) (int64, error) {
	return s.spendFn(ctx, userID, amount)
}

func (s *walletServiceStub) Balance(ctx context.Context, userID string) (*domain.User, error) {
	return s.balanceFn(ctx, userID)
}

func (s *walletServiceStub) ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.Entry, error) {
	return s.listEntriesFn(ctx, input)
}

func (s *walletServiceStub) VerifyUser(ctx context.Context, userID string) (*usecase.VerifyResult, error) {
	return s.verifyFn(ctx, userID)
}

func TestWalletHandler_Balance(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		balanceFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return &domain.User{ID: userID, Username: "alice", Balance: 42}, nil
		},
	}, nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/wallet/balance", nil), &domain.User{ID: "user-1"})
	rec := httptest.NewRecorder()

	handler.Balance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["username"] != "alice" {
		t.Fatalf("expected username field, got %v", resp)
	}
	if resp["balance"] != float64(42) {
		t.Fatalf("expected balance 42, got %v", resp["balance"])
	}
}

func TestWalletHandler_Balance_Unauthenticated(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/wallet/balance", nil)
	rec := httptest.NewRecorder()

	handler.Balance(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestWalletHandler_Spend_Success(t *testing.T) {
	var gotUserID string
	var gotAmount int64

	handler := NewWalletHandler(&walletServiceStub{
		spendFn: func(ctx context.Context, userID string, amount int64) (int64, error) {
			gotUserID = userID
			gotAmount = amount
			return 60, nil
		},
	}, nil)

	body, _ := json.Marshal(dto.SpendRequest{Amount: 40})
	req := withUser(httptest.NewRequest(http.MethodPost, "/wallet/spend", bytes.NewReader(body)), &domain.User{ID: "user-1"})
	rec := httptest.NewRecorder()

	handler.Spend(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUserID != "user-1" || gotAmount != 40 {
		t.Fatalf("expected spend of 40 for user-1, got %d for %s", gotAmount, gotUserID)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["new_balance"] != float64(60) {
		t.Fatalf("expected new_balance 60, got %v", resp["new_balance"])
	}
	if resp["message"] == "" || resp["message"] == nil {
		t.Fatalf("expected a message field, got %v", resp)
	}
}

func TestWalletHandler_Spend_InsufficientFunds(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		spendFn: func(ctx context.Context, userID string, amount int64) (int64, error) {
			return 0, domain.ErrInsufficientFunds
		},
	}, nil)

	body, _ := json.Marshal(dto.SpendRequest{Amount: 5000})
	req := withUser(httptest.NewRequest(http.MethodPost, "/wallet/spend", bytes.NewReader(body)), &domain.User{ID: "user-1"})
	rec := httptest.NewRecorder()

	handler.Spend(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWalletHandler_Spend_InvalidJSON(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		spendFn: func(ctx context.Context, userID string, amount int64) (int64, error) {
			t.Fatal("Spend should not be called for invalid payload")
			return 0, nil
		},
	}, nil)

	req := withUser(httptest.NewRequest(http.MethodPost, "/wallet/spend", bytes.NewBufferString("{oops")), &domain.User{ID: "user-1"})
	rec := httptest.NewRecorder()

	handler.Spend(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWalletHandler_Transactions(t *testing.T) {
	itemID := "item-1"
	entries := []*domain.Entry{
		{ID: "e2", UserID: "user-1", Amount: 30, Kind: domain.KindCredit},
		{ID: "e1", UserID: "user-1", ItemID: &itemID, Amount: 50, Kind: domain.KindPurchase},
	}

	var captured usecase.ListEntriesInput
	handler := NewWalletHandler(&walletServiceStub{
		listEntriesFn: func(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.Entry, error) {
			captured = input
			return entries, nil
		},
	}, nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/wallet/transactions?limit=10&offset=5", nil), &domain.User{ID: "user-1"})
	rec := httptest.NewRecorder()

	handler.Transactions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.UserID != "user-1" || captured.Limit != 10 || captured.Offset != 5 {
		t.Fatalf("unexpected list input: %+v", captured)
	}

	var resp dto.ListEntriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(resp.Entries))
	}
	if resp.Entries[1].ItemID == nil || *resp.Entries[1].ItemID != "item-1" {
		t.Fatalf("expected purchase entry to reference item-1, got %+v", resp.Entries[1])
	}
}

func TestWalletHandler_Transactions_ClampsPagination(t *testing.T) {
	var captured usecase.ListEntriesInput
	handler := NewWalletHandler(&walletServiceStub{
		listEntriesFn: func(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.Entry, error) {
			captured = input
			return nil, nil
		},
	}, nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/wallet/transactions?limit=500&offset=-3", nil), &domain.User{ID: "user-1"})
	rec := httptest.NewRecorder()

	handler.Transactions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Limit != 100 || captured.Offset != 0 {
		t.Fatalf("expected clamped input (100, 0), got (%d, %d)", captured.Limit, captured.Offset)
	}

	var resp dto.ListEntriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Limit != 100 || resp.Offset != 0 {
		t.Fatalf("expected echoed page metadata (100, 0), got (%d, %d)", resp.Limit, resp.Offset)
	}
}

func TestWalletHandler_Verify(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		verifyFn: func(ctx context.Context, userID string) (*usecase.VerifyResult, error) {
			return &usecase.VerifyResult{
				UserID:     userID,
				Balance:    120,
				EntrySum:   20,
				EntryCount: 3,
				Consistent: true,
			}, nil
		},
	}, nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/wallet/verify", nil), &domain.User{ID: "user-1"})
	rec := httptest.NewRecorder()

	handler.Verify(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.VerifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Consistent || resp.EntryCount != 3 {
		t.Fatalf("unexpected verify response: %+v", resp)
	}
}
