package repositories

import (
	"context"
	"time"

	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryFilter narrows ListEntriesByUser results. Nil fields are ignored.
type EntryFilter struct {
	WalletID  *string
	Direction *domain.EntryDirection
	DateFrom  *time.Time
	DateTo    *time.Time
}

// LedgerReader defines read operations for ledger entries
type LedgerReader interface {
	// FindEntryForUser retrieves one entry scoped to its owner.
	FindEntryForUser(ctx context.Context, userID, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesByUser retrieves a user's entries, newest-first by date then
	// creation time, optionally filtered.
	ListEntriesByUser(ctx context.Context, userID string, filter EntryFilter) ([]domain.LedgerEntry, error)

	// SumWalletBalance computes SUM(credit) - SUM(debit) over one wallet's
	// entries. Zero entries means a zero balance.
	SumWalletBalance(ctx context.Context, userID, walletID string) (decimal.Decimal, error)

	// SumBalancesByWallet computes every wallet balance for a user in one
	// query, keyed by wallet ID. Wallets without entries are absent.
	SumBalancesByWallet(ctx context.Context, userID string) (map[string]decimal.Decimal, error)

	// CountEntriesByWallet reports how many entries a wallet holds.
	CountEntriesByWallet(ctx context.Context, userID, walletID string) (int64, error)
}

// LedgerWriter defines write operations for ledger entries
type LedgerWriter interface {
	// SaveEntry persists a single entry.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// UpdateEntry rewrites an entry's mutable fields.
	UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error

	// DeleteEntry hard-deletes an entry scoped to its owner; ErrNotFound when absent.
	DeleteEntry(ctx context.Context, userID, entryID string) error

	// PostTransfer writes a debit/credit entry pair and its reserved
	// categories in one database transaction, after locking the source
	// wallet row and re-checking its balance against RequiredBalance.
	// An insufficient balance surfaces as apperrors.ErrConflict; nothing is
	// written in that case.
	PostTransfer(ctx context.Context, posting domain.TransferPosting) error
}

// LedgerRepository combines all ledger-related repository interfaces
type LedgerRepository interface {
	LedgerReader
	LedgerWriter
}
