package services

import (
	"context"

	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	"github.com/fintrackr/fintrackr-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc defines read operations over ledger entries
type LedgerReaderSvc interface {
	// GetEntry retrieves one entry scoped to its owner.
	GetEntry(ctx context.Context, userID, entryID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves a user's entries newest-first, filtered.
	ListEntries(ctx context.Context, userID string, params dto.ListEntriesParams) ([]domain.LedgerEntry, error)

	// WalletBalance recomputes one wallet's balance from its entries.
	WalletBalance(ctx context.Context, userID, walletID string) (decimal.Decimal, error)
}

// LedgerWriterSvc defines write operations over ledger entries
type LedgerWriterSvc interface {
	// CreateEntry records one ledger entry after validating its category.
	CreateEntry(ctx context.Context, userID string, req dto.CreateEntryRequest) (*domain.LedgerEntry, error)

	// UpdateEntry patches amount/direction/category/date/note individually.
	UpdateEntry(ctx context.Context, userID, entryID string, req dto.UpdateEntryRequest) (*domain.LedgerEntry, error)

	// DeleteEntry hard-deletes an entry.
	DeleteEntry(ctx context.Context, userID, entryID string) error
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
