package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avlek/shopledger/internal/domain"
	"github.com/avlek/shopledger/internal/usecase"
)

// ItemRepository implements usecase.ItemRepository.
type ItemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository.
func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

// Create inserts a new catalog item.
func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (id, name, price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Price,
		item.Stock,
		item.CreatedAt,
		item.UpdatedAt,
	)

	return err
}

// GetByID retrieves an item by ID.
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	query := `
		SELECT id, name, price, stock, created_at, updated_at
		FROM items
		WHERE id = $1
	`

	return r.scanItem(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves an item by ID with a FOR UPDATE row lock.
func (r *ItemRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Item, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT id, name, price, stock, created_at, updated_at
		FROM items
		WHERE id = $1
		FOR UPDATE
	`

	return r.scanItem(pgxTx.QueryRow(ctx, query, id))
}

// DecrementStock decrements an item's stock by one inside a transaction.
// The stock guard in the statement keeps stock from going below zero
// even if a caller skips the locked pre-check.
func (r *ItemRepository) DecrementStock(ctx context.Context, tx usecase.Transaction, id string, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE items
		SET stock = stock - 1, updated_at = $2
		WHERE id = $1 AND stock > 0
	`

	tag, err := pgxTx.Exec(ctx, query, id, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrOutOfStock
	}

	return nil
}

// List retrieves all items, oldest first.
func (r *ItemRepository) List(ctx context.Context) ([]*domain.Item, error) {
	query := `
		SELECT id, name, price, stock, created_at, updated_at
		FROM items
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		var item domain.Item

		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Price,
			&item.Stock,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *ItemRepository) scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item

	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Price,
		&item.Stock,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}

		return nil, err
	}

	return &item, nil
}
