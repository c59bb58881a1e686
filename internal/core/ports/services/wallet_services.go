package services

import (
	"context"

	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	"github.com/fintrackr/fintrackr-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// WalletReaderSvc defines read operations for wallet data
type WalletReaderSvc interface {
	// GetWallet retrieves one wallet scoped to its owner.
	GetWallet(ctx context.Context, userID, walletID string) (*domain.Wallet, error)

	// ListWallets retrieves a user's wallets with ledger-computed balances.
	ListWallets(ctx context.Context, userID string) ([]domain.Wallet, error)
}

// WalletWriterSvc defines write operations for wallet data
type WalletWriterSvc interface {
	// CreateWallet creates a named, currency-tagged wallet.
	CreateWallet(ctx context.Context, userID string, req dto.CreateWalletRequest) (*domain.Wallet, error)

	// CreateDefaultWallet provisions the "Main"/USD wallet for a new user.
	// Invoked by the registration path, not as a hidden side effect.
	CreateDefaultWallet(ctx context.Context, userID string) (*domain.Wallet, error)

	// UpdateWallet renames a wallet; a blank name is skipped.
	UpdateWallet(ctx context.Context, userID, walletID string, req dto.UpdateWalletRequest) (*domain.Wallet, error)

	// DeleteWallet removes a wallet; refused while it has ledger entries.
	DeleteWallet(ctx context.Context, userID, walletID string) error
}

// WalletTransferSvc executes same-user cross-wallet transfers.
type WalletTransferSvc interface {
	// Transfer moves amount from one of the user's wallets to another as a
	// currency-converted debit/credit entry pair, written atomically.
	Transfer(ctx context.Context, userID, fromWalletID, toWalletID string, amount decimal.Decimal, customRate *decimal.Decimal) error
}

// WalletSvcFacade combines all wallet-related service interfaces
type WalletSvcFacade interface {
	WalletReaderSvc
	WalletWriterSvc
	WalletTransferSvc
}
