package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avlek/shopledger/internal/domain"
)

// CatalogUseCase handles catalog item operations.
type CatalogUseCase struct {
	itemRepo ItemRepository
	idGen    IDGenerator
	cache    Cache
}

// NewCatalogUseCase creates a new CatalogUseCase. cache may be nil.
func NewCatalogUseCase(itemRepo ItemRepository, idGen IDGenerator, cache Cache) *CatalogUseCase {
	return &CatalogUseCase{
		itemRepo: itemRepo,
		idGen:    idGen,
		cache:    cache,
	}
}

// CreateItemInput represents input for creating a catalog item.
type CreateItemInput struct {
	Name  string
	Price int64
	Stock int64
}

// CreateItem creates a new catalog item.
func (uc *CatalogUseCase) CreateItem(ctx context.Context, input CreateItemInput) (*domain.Item, error) {
	if err := domain.ValidateItemName(input.Name); err != nil {
		return nil, err
	}

	if input.Price < 0 {
		return nil, domain.ErrInvalidPrice
	}

	if input.Stock < 0 {
		return nil, domain.ErrInvalidStock
	}

	now := time.Now().UTC()

	item := &domain.Item{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Price:     input.Price,
		Stock:     input.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	uc.invalidate(ctx)

	return item, nil
}

// GetItem retrieves an item by ID.
func (uc *CatalogUseCase) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	return uc.itemRepo.GetByID(ctx, id)
}

// ListItems lists all catalog items, read through the cache when one is
// configured. Cache failures fall back to the database.
func (uc *CatalogUseCase) ListItems(ctx context.Context) ([]*domain.Item, error) {
	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, itemsCacheKey); err == nil {
			var items []*domain.Item
			if err := json.Unmarshal(data, &items); err == nil {
				return items, nil
			}
		}
	}

	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(items); err == nil {
			_ = uc.cache.Set(ctx, itemsCacheKey, data, itemsCacheTTL)
		}
	}

	return items, nil
}

func (uc *CatalogUseCase) invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, itemsCacheKey)
}
