package usecase

import (
	"context"
	"time"

	"github.com/avlek/shopledger/internal/domain"
)

// WalletUseCase is the ledger core: every wallet balance mutation goes
// through here, inside a single database transaction that locks the
// affected user row (and item row, for purchases), writes the new
// balance, and appends exactly one ledger entry. Either all of it
// commits or none of it does.
type WalletUseCase struct {
	txManager       TransactionManager
	userRepo        UserRepository
	itemRepo        ItemRepository
	entryRepo       EntryRepository
	idGen           IDGenerator
	retrier         Retrier
	cache           Cache
	startingBalance int64
}

// NewWalletUseCase creates a new WalletUseCase. cache may be nil.
func NewWalletUseCase(
	txManager TransactionManager,
	userRepo UserRepository,
	itemRepo ItemRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
	startingBalance int64,
) *WalletUseCase {
	return &WalletUseCase{
		txManager:       txManager,
		userRepo:        userRepo,
		itemRepo:        itemRepo,
		entryRepo:       entryRepo,
		idGen:           idGen,
		retrier:         retrier,
		cache:           cache,
		startingBalance: startingBalance,
	}
}

// Spend debits amount from the user's wallet and appends a spend entry.
// Returns the new balance.
func (uc *WalletUseCase) Spend(ctx context.Context, userID string, amount int64) (int64, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return 0, err
	}

	var newBalance int64

	err := uc.retry(ctx, func() error {
		balance, err := uc.debit(ctx, userID, amount, nil, domain.KindSpend)
		if err != nil {
			return err
		}

		newBalance = balance

		return nil
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}

// Credit increases the user's balance and appends a credit entry.
// Authorization is the caller's concern: the HTTP layer admits only
// admins here. Returns the new balance.
func (uc *WalletUseCase) Credit(ctx context.Context, userID string, amount int64) (int64, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return 0, err
	}

	var newBalance int64

	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		user, err := uc.userRepo.GetByIDForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		balance := user.Balance + amount

		if err := uc.userRepo.UpdateBalance(ctx, tx, user.ID, balance, now); err != nil {
			return err
		}

		entry := &domain.Entry{
			ID:        uc.idGen.Generate(),
			UserID:    user.ID,
			Amount:    amount,
			Kind:      domain.KindCredit,
			CreatedAt: now,
		}

		if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		newBalance = balance

		return nil
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}

// PurchaseResult is the outcome of a successful purchase.
type PurchaseResult struct {
	Item       *domain.Item
	NewBalance int64
	StockLeft  int64
}

// Purchase debits the item's price from the user's wallet, decrements
// the item's stock by one and appends a purchase entry referencing the
// item. Balance and stock change in the same transaction or not at all.
func (uc *WalletUseCase) Purchase(ctx context.Context, userID, itemID string) (*PurchaseResult, error) {
	var result *PurchaseResult

	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		// Lock order is fixed (user row first, then item row) so
		// concurrent purchases cannot deadlock each other.
		user, err := uc.userRepo.GetByIDForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}

		item, err := uc.itemRepo.GetByIDForUpdate(ctx, tx, itemID)
		if err != nil {
			return err
		}

		if !item.InStock() {
			return domain.ErrOutOfStock
		}

		if err := user.CanDebit(item.Price); err != nil {
			return err
		}

		now := time.Now().UTC()

		if err := uc.itemRepo.DecrementStock(ctx, tx, item.ID, now); err != nil {
			return err
		}

		balance := user.Balance - item.Price

		if err := uc.userRepo.UpdateBalance(ctx, tx, user.ID, balance, now); err != nil {
			return err
		}

		entry := &domain.Entry{
			ID:        uc.idGen.Generate(),
			UserID:    user.ID,
			ItemID:    &item.ID,
			Amount:    item.Price,
			Kind:      domain.KindPurchase,
			CreatedAt: now,
		}

		if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		item.Stock--

		result = &PurchaseResult{
			Item:       item,
			NewBalance: balance,
			StockLeft:  item.Stock,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateItems(ctx)

	return result, nil
}

// Balance returns the user's current balance from a fresh read.
func (uc *WalletUseCase) Balance(ctx context.Context, userID string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// ListEntriesInput represents input for listing ledger entries.
type ListEntriesInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListEntries lists the user's ledger entries newest first. Entries
// sharing a timestamp are ordered by descending ID; IDs are ULIDs, so
// that is insertion order.
func (uc *WalletUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.Entry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.entryRepo.ListByUser(ctx, input.UserID, limit, offset)
}

// VerifyResult reports a reconciliation check for one user.
type VerifyResult struct {
	UserID     string
	Balance    int64
	EntrySum   int64
	EntryCount int64
	Consistent bool
}

// VerifyUser checks the core ledger invariant for one user: the current
// balance must equal the starting balance plus the signed sum of all
// ledger entries.
func (uc *WalletUseCase) VerifyUser(ctx context.Context, userID string) (*VerifyResult, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sum, err := uc.entryRepo.SumSignedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := uc.entryRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &VerifyResult{
		UserID:     userID,
		Balance:    user.Balance,
		EntrySum:   sum,
		EntryCount: count,
		Consistent: user.Balance == uc.startingBalance+sum,
	}, nil
}

// debit is the shared debit path for spend and purchase-less debits.
// The entry kind is an explicit input, not inferred from item presence.
func (uc *WalletUseCase) debit(ctx context.Context, userID string, amount int64, itemID *string, kind domain.EntryKind) (int64, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	user, err := uc.userRepo.GetByIDForUpdate(ctx, tx, userID)
	if err != nil {
		return 0, err
	}

	if err := user.CanDebit(amount); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	balance := user.Balance - amount

	if err := uc.userRepo.UpdateBalance(ctx, tx, user.ID, balance, now); err != nil {
		return 0, err
	}

	entry := &domain.Entry{
		ID:        uc.idGen.Generate(),
		UserID:    user.ID,
		ItemID:    itemID,
		Amount:    amount,
		Kind:      kind,
		CreatedAt: now,
	}

	if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return balance, nil
}

func (uc *WalletUseCase) retry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}
	return uc.retrier.Retry(ctx, operation)
}

func (uc *WalletUseCase) invalidateItems(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	// Best effort: a failed invalidation only extends listing staleness
	// until the TTL expires.
	_ = uc.cache.Delete(ctx, itemsCacheKey)
}
