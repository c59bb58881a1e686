package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fintrackr/fintrackr-backend/internal/apperrors"
	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/fintrackr-backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// ledgerService implements entry CRUD and balance reads over the ledger.
type ledgerService struct {
	ledgerRepo   portsrepo.LedgerRepository
	walletRepo   portsrepo.WalletRepository
	categoryRepo portsrepo.CategoryRepository
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, walletRepo portsrepo.WalletRepository, categoryRepo portsrepo.CategoryRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:   ledgerRepo,
		walletRepo:   walletRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) GetEntry(ctx context.Context, userID, entryID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryForUser(ctx, userID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, userID string, params dto.ListEntriesParams) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.ListEntriesByUser(ctx, userID, portsrepo.EntryFilter{
		WalletID:  params.WalletID,
		Direction: params.Direction,
		DateFrom:  params.DateFrom,
		DateTo:    params.DateTo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// WalletBalance recomputes one wallet's balance from its entries. A wallet
// with no entries has a zero balance.
func (s *ledgerService) WalletBalance(ctx context.Context, userID, walletID string) (decimal.Decimal, error) {
	if _, err := s.walletRepo.FindWalletForUser(ctx, userID, walletID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to resolve wallet: %w", err)
	}
	balance, err := s.ledgerRepo.SumWalletBalance(ctx, userID, walletID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute wallet balance: %w", err)
	}
	return balance, nil
}

// CreateEntry records one ledger entry after validating its wallet and category.
func (s *ledgerService) CreateEntry(ctx context.Context, userID string, req dto.CreateEntryRequest) (*domain.LedgerEntry, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be greater than 0", apperrors.ErrValidation)
	}

	if _, err := s.walletRepo.FindWalletForUser(ctx, userID, req.WalletID); err != nil {
		return nil, fmt.Errorf("%w: wallet not found", apperrors.ErrValidation)
	}

	if _, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category does not exist", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	now := time.Now().UTC()
	entry := domain.LedgerEntry{
		EntryID:    uuid.NewString(),
		UserID:     userID,
		WalletID:   req.WalletID,
		Amount:     req.Amount.Round(2),
		Direction:  req.Direction,
		CategoryID: req.CategoryID,
		Date:       req.Date,
		Note:       req.Note,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	return &entry, nil
}

// UpdateEntry patches amount/direction/category/date/note individually.
func (s *ledgerService) UpdateEntry(ctx context.Context, userID, entryID string, req dto.UpdateEntryRequest) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryForUser(ctx, userID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry for update: %w", err)
	}

	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: amount must be greater than 0", apperrors.ErrValidation)
		}
		entry.Amount = req.Amount.Round(2)
	}
	if req.Direction != nil {
		entry.Direction = *req.Direction
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindCategoryByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: category does not exist", apperrors.ErrValidation)
			}
			return nil, fmt.Errorf("failed to resolve category: %w", err)
		}
		entry.CategoryID = *req.CategoryID
	}
	if req.Date != nil {
		entry.Date = *req.Date
	}
	if req.Note != nil {
		entry.Note = *req.Note
	}
	entry.UpdatedAt = time.Now().UTC()

	if err := s.ledgerRepo.UpdateEntry(ctx, *entry); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	return entry, nil
}

// DeleteEntry hard-deletes an entry. There is no reversal primitive;
// corrections are plain edits and deletes.
func (s *ledgerService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	if err := s.ledgerRepo.DeleteEntry(ctx, userID, entryID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}
