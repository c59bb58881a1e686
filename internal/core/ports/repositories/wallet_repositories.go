package repositories

import (
	"context"

	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
)

// WalletReader defines read operations for wallet data
type WalletReader interface {
	// FindWalletByID retrieves a wallet by its identifier regardless of owner.
	// Used by the peer-payment flow to resolve the requester's target wallet.
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)

	// FindWalletForUser retrieves a wallet scoped to its owner.
	FindWalletForUser(ctx context.Context, userID, walletID string) (*domain.Wallet, error)

	// ListWalletsByUser retrieves all of a user's wallets ordered by name.
	// Balances are NOT populated here; the service enriches them.
	ListWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error)
}

// WalletWriter defines write operations for wallet data
type WalletWriter interface {
	// SaveWallet persists a new wallet. A (user, name) collision surfaces
	// as apperrors.ErrDuplicate.
	SaveWallet(ctx context.Context, wallet domain.Wallet) error

	// UpdateWallet updates a wallet's mutable fields (name).
	UpdateWallet(ctx context.Context, wallet domain.Wallet) error

	// DeleteWallet removes a wallet row. Returns apperrors.ErrNotFound when
	// no row matches. Entry-count guarding is the service's responsibility.
	DeleteWallet(ctx context.Context, userID, walletID string) error
}

// WalletRepository combines all wallet-related repository interfaces
type WalletRepository interface {
	WalletReader
	WalletWriter
}
