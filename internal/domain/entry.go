package domain

import "time"

// EntryKind classifies a ledger entry.
type EntryKind string

const (
	// KindPurchase is a debit paired with an item stock decrement.
	KindPurchase EntryKind = "purchase"

	// KindSpend is a plain wallet debit with no item attached.
	KindSpend EntryKind = "spend"

	// KindCredit is an admin-issued wallet credit.
	KindCredit EntryKind = "credit"
)

// IsValid checks if the kind is a known entry kind.
func (k EntryKind) IsValid() bool {
	switch k {
	case KindPurchase, KindSpend, KindCredit:
		return true
	}
	return false
}

// Entry is an immutable record of one balance-affecting event.
// Amount is always positive; the sign is derived from Kind.
// ItemID is nil for spend and credit entries.
type Entry struct {
	ID        string
	UserID    string
	ItemID    *string
	Amount    int64
	Kind      EntryKind
	CreatedAt time.Time
}

// SignedAmount returns the entry's effect on the balance:
// positive for credits, negative for purchases and spends.
func (e *Entry) SignedAmount() int64 {
	if e.Kind == KindCredit {
		return e.Amount
	}
	return -e.Amount
}
