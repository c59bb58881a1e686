package domain

import "time"

// CategoryKind splits categories into the expense and income halves of the ledger.
type CategoryKind string

const (
	Expense CategoryKind = "EXPENSE"
	Income  CategoryKind = "INCOME"
)

// Category labels ledger entries. Categories are global, keyed by (Name, Kind).
type Category struct {
	CategoryID string       `json:"categoryID"` // Primary Key (UUID)
	Name       string       `json:"name"`
	Kind       CategoryKind `json:"kind"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// Reserved category names used to tag system-generated transfer entries.
// They are lazily created on first use and shared by all users.
const (
	WalletTransferCategory = "Wallet Transfer"
	PeerTransferCategory   = "Peer Transfer"
)

// CategoryKey identifies a category by its natural key, used for the
// idempotent lookup-or-create of reserved categories.
type CategoryKey struct {
	Name string
	Kind CategoryKind
}
