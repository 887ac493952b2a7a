package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/avlek/shopledger/internal/domain"
	"github.com/avlek/shopledger/internal/usecase"
	"github.com/avlek/shopledger/internal/usecase/mocks"
)

func TestCatalogUseCase_CreateItem(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.CreateItemInput
		wantErr error
	}{
		{name: "valid item", input: usecase.CreateItemInput{Name: "Book", Price: 50, Stock: 20}},
		{name: "free item", input: usecase.CreateItemInput{Name: "Flyer", Price: 0, Stock: 100}},
		{name: "empty name", input: usecase.CreateItemInput{Name: "  ", Price: 10, Stock: 1}, wantErr: domain.ErrInvalidItemName},
		{name: "negative price", input: usecase.CreateItemInput{Name: "Book", Price: -1, Stock: 1}, wantErr: domain.ErrInvalidPrice},
		{name: "negative stock", input: usecase.CreateItemInput{Name: "Book", Price: 1, Stock: -1}, wantErr: domain.ErrInvalidStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			itemRepo := mocks.NewMockItemRepository()
			uc := usecase.NewCatalogUseCase(itemRepo, mocks.NewMockIDGenerator(), nil)

			item, err := uc.CreateItem(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if item.ID == "" {
				t.Error("expected generated item ID")
			}
			if item.Name != tt.input.Name || item.Price != tt.input.Price || item.Stock != tt.input.Stock {
				t.Errorf("item fields mismatch: %+v", item)
			}
		})
	}
}

func TestCatalogUseCase_ListItems_CacheMissThenHit(t *testing.T) {
	itemRepo := mocks.NewMockItemRepository()
	cache := mocks.NewMockCache()
	uc := usecase.NewCatalogUseCase(itemRepo, mocks.NewMockIDGenerator(), cache)

	ctx := context.Background()
	itemRepo.Create(ctx, &domain.Item{ID: "item-1", Name: "Book", Price: 50, Stock: 20})

	listCalls := 0
	itemRepo.ListFunc = func(ctx context.Context) ([]*domain.Item, error) {
		listCalls++
		return []*domain.Item{{ID: "item-1", Name: "Book", Price: 50, Stock: 20}}, nil
	}

	first, err := uc.ListItems(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 1 || listCalls != 1 {
		t.Fatalf("expected one item from repository, got %d items after %d calls", len(first), listCalls)
	}

	second, err := uc.ListItems(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected one cached item, got %d", len(second))
	}
	if listCalls != 1 {
		t.Errorf("expected cache hit to skip the repository, got %d calls", listCalls)
	}
}

func TestCatalogUseCase_ListItems_CacheFailureFallsBack(t *testing.T) {
	itemRepo := mocks.NewMockItemRepository()

	failing := mocks.NewMockCache()
	failing.GetFunc = func(ctx context.Context, key string) ([]byte, error) {
		return nil, errors.New("redis down")
	}

	uc := usecase.NewCatalogUseCase(itemRepo, mocks.NewMockIDGenerator(), failing)

	ctx := context.Background()
	itemRepo.Create(ctx, &domain.Item{ID: "item-1", Name: "Book", Price: 50, Stock: 20})

	items, err := uc.ListItems(ctx)
	if err != nil {
		t.Fatalf("cache failure must fall back to the repository: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}
}

func TestCatalogUseCase_CreateItemInvalidatesCache(t *testing.T) {
	itemRepo := mocks.NewMockItemRepository()
	cache := mocks.NewMockCache()
	uc := usecase.NewCatalogUseCase(itemRepo, mocks.NewMockIDGenerator(), cache)

	ctx := context.Background()

	if _, err := uc.ListItems(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deleted := false
	cache.DeleteFunc = func(ctx context.Context, key string) error {
		deleted = true
		return nil
	}

	if _, err := uc.CreateItem(ctx, usecase.CreateItemInput{Name: "Pen", Price: 10, Stock: 100}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !deleted {
		t.Error("expected item cache invalidation on create")
	}
}
