package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fintrackr/fintrackr-backend/internal/apperrors"
	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/fintrackr-backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr-backend/internal/dto"
	"github.com/fintrackr/fintrackr-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// walletService implements wallet CRUD and the cross-wallet transfer flow.
type walletService struct {
	walletRepo portsrepo.WalletRepository
	ledgerRepo portsrepo.LedgerRepository
	fxRate     portssvc.FxRateProvider
}

// NewWalletService creates a new wallet service.
func NewWalletService(walletRepo portsrepo.WalletRepository, ledgerRepo portsrepo.LedgerRepository, fxRate portssvc.FxRateProvider) portssvc.WalletSvcFacade {
	return &walletService{
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
		fxRate:     fxRate,
	}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// GetWallet retrieves one wallet with its ledger-computed balance.
func (s *walletService) GetWallet(ctx context.Context, userID, walletID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletForUser(ctx, userID, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	balance, err := s.ledgerRepo.SumWalletBalance(ctx, userID, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute wallet balance: %w", err)
	}
	wallet.Balance = balance

	return wallet, nil
}

// ListWallets retrieves all of a user's wallets, enriched with balances
// computed in a single grouped query.
func (s *walletService) ListWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.ListWalletsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}

	balances, err := s.ledgerRepo.SumBalancesByWallet(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute wallet balances: %w", err)
	}

	for i := range wallets {
		if b, ok := balances[wallets[i].WalletID]; ok {
			wallets[i].Balance = b
		} else {
			wallets[i].Balance = decimal.Zero
		}
	}

	return wallets, nil
}

// CreateWallet creates a named, currency-tagged wallet for the user.
func (s *walletService) CreateWallet(ctx context.Context, userID string, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	currency := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: currency code must be a 3-letter ISO code", apperrors.ErrValidation)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: wallet name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	wallet := domain.Wallet{
		WalletID:     uuid.NewString(),
		UserID:       userID,
		Name:         name,
		CurrencyCode: currency,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.walletRepo.SaveWallet(ctx, wallet); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	return &wallet, nil
}

// CreateDefaultWallet provisions the Main/USD wallet for a new user.
func (s *walletService) CreateDefaultWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	return s.CreateWallet(ctx, userID, dto.CreateWalletRequest{
		Name:         domain.DefaultWalletName,
		CurrencyCode: domain.DefaultWalletCurrency,
	})
}

// UpdateWallet renames a wallet. A blank or missing name leaves the current
// name untouched; the update still stamps UpdatedAt.
func (s *walletService) UpdateWallet(ctx context.Context, userID, walletID string, req dto.UpdateWalletRequest) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletForUser(ctx, userID, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet for update: %w", err)
	}

	if req.Name != nil {
		if name := strings.TrimSpace(*req.Name); name != "" {
			wallet.Name = name
		}
	}
	wallet.UpdatedAt = time.Now().UTC()

	if err := s.walletRepo.UpdateWallet(ctx, *wallet); err != nil {
		return nil, fmt.Errorf("failed to update wallet: %w", err)
	}

	balance, err := s.ledgerRepo.SumWalletBalance(ctx, userID, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute wallet balance: %w", err)
	}
	wallet.Balance = balance

	return wallet, nil
}

// DeleteWallet removes a wallet. Wallets with ledger entries are never
// deleted; the entries would be orphaned.
func (s *walletService) DeleteWallet(ctx context.Context, userID, walletID string) error {
	if _, err := s.walletRepo.FindWalletForUser(ctx, userID, walletID); err != nil {
		return fmt.Errorf("failed to get wallet for deletion: %w", err)
	}

	count, err := s.ledgerRepo.CountEntriesByWallet(ctx, userID, walletID)
	if err != nil {
		return fmt.Errorf("failed to count wallet entries: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: cannot delete wallet with existing entries", apperrors.ErrConflict)
	}

	if err := s.walletRepo.DeleteWallet(ctx, userID, walletID); err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}

	return nil
}

// Transfer moves amount between two of the user's own wallets as a paired
// Debit/Credit posting. The debit side carries amount in the source currency;
// the credit side carries round(amount * rate, 2) in the destination
// currency. The posting is written in one database transaction that locks
// the source wallet and re-checks its balance.
func (s *walletService) Transfer(ctx context.Context, userID, fromWalletID, toWalletID string, amount decimal.Decimal, customRate *decimal.Decimal) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if fromWalletID == toWalletID {
		return fmt.Errorf("%w: cannot transfer to the same wallet", apperrors.ErrValidation)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be greater than 0", apperrors.ErrValidation)
	}

	from, err := s.walletRepo.FindWalletForUser(ctx, userID, fromWalletID)
	if err != nil {
		return fmt.Errorf("%w: source wallet not found", apperrors.ErrValidation)
	}
	to, err := s.walletRepo.FindWalletForUser(ctx, userID, toWalletID)
	if err != nil {
		return fmt.Errorf("%w: destination wallet not found", apperrors.ErrValidation)
	}

	// Early balance check for a friendly error; the posting re-checks under
	// a row lock so concurrent transfers cannot both pass.
	fromBalance, err := s.ledgerRepo.SumWalletBalance(ctx, userID, fromWalletID)
	if err != nil {
		return fmt.Errorf("failed to compute source wallet balance: %w", err)
	}
	if fromBalance.LessThan(amount) {
		return fmt.Errorf("%w: insufficient balance", apperrors.ErrConflict)
	}

	var rate decimal.Decimal
	if customRate != nil {
		rate = *customRate
	} else {
		rate = s.fxRate.Rate(ctx, from.CurrencyCode, to.CurrencyCode)
	}

	now := time.Now().UTC()
	posting := domain.TransferPosting{
		SourceWalletID:  fromWalletID,
		RequiredBalance: amount,
		Debit: domain.LedgerEntry{
			EntryID:   uuid.NewString(),
			UserID:    userID,
			WalletID:  fromWalletID,
			Amount:    amount,
			Direction: domain.Debit,
			Date:      now,
			Note:      fmt.Sprintf("Transfer to %s (%s)", to.Name, to.CurrencyCode),
			Timestamps: domain.Timestamps{
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		DebitCategory: domain.CategoryKey{Name: domain.WalletTransferCategory, Kind: domain.Expense},
		Credit: domain.LedgerEntry{
			EntryID:   uuid.NewString(),
			UserID:    userID,
			WalletID:  toWalletID,
			Amount:    amount.Mul(rate).Round(2),
			Direction: domain.Credit,
			Date:      now,
			Note:      fmt.Sprintf("Transfer from %s (%s)", from.Name, from.CurrencyCode),
			Timestamps: domain.Timestamps{
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		CreditCategory: domain.CategoryKey{Name: domain.WalletTransferCategory, Kind: domain.Income},
	}

	if err := s.ledgerRepo.PostTransfer(ctx, posting); err != nil {
		return fmt.Errorf("failed to post transfer: %w", err)
	}

	logger.Info("Wallet transfer posted",
		slog.String("from_wallet_id", fromWalletID),
		slog.String("to_wallet_id", toWalletID),
		slog.String("amount", amount.String()),
		slog.String("rate", rate.String()),
	)
	return nil
}
