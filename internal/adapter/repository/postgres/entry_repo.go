package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avlek/shopledger/internal/domain"
	"github.com/avlek/shopledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository. Entries are
// append-only; the table has no update or delete path.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create inserts a ledger entry inside the same transaction as its
// paired balance mutation.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO entries (id, user_id, item_id, amount, kind, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := pgxTx.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.ItemID,
		entry.Amount,
		entry.Kind,
		entry.CreatedAt,
	)

	return err
}

// ListByUser retrieves a user's entries newest first. Ties on
// created_at fall back to descending ID; IDs are ULIDs so that is
// insertion order within the same millisecond.
func (r *EntryRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Entry, error) {
	query := `
		SELECT id, user_id, item_id, amount, kind, created_at
		FROM entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		var entry domain.Entry

		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.ItemID,
			&entry.Amount,
			&entry.Kind,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// CountByUser counts a user's entries.
func (r *EntryRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64

	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM entries WHERE user_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// SumSignedByUser sums a user's entries signed by kind: credits count
// positive, purchases and spends negative.
func (r *EntryRepository) SumSignedByUser(ctx context.Context, userID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN kind = 'credit' THEN amount ELSE -amount END), 0)
		FROM entries
		WHERE user_id = $1
	`

	var sum int64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&sum); err != nil {
		return 0, err
	}

	return sum, nil
}
