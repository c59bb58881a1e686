package dto

import (
	"time"

	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWalletRequest defines the data needed to create a new wallet.
// The currency code is any 3-letter code; the service uppercases it.
type CreateWalletRequest struct {
	Name         string `json:"name" binding:"required"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3,alpha"`
}

// UpdateWalletRequest defines the data allowed for updating a wallet.
// A missing or blank name leaves the current name untouched.
type UpdateWalletRequest struct {
	Name *string `json:"name"`
}

// TransferRequest moves value between two of the caller's own wallets.
// Rate, when set, bypasses the FX rate provider.
type TransferRequest struct {
	FromWalletID string           `json:"fromWalletID" binding:"required"`
	ToWalletID   string           `json:"toWalletID" binding:"required"`
	Amount       decimal.Decimal  `json:"amount" binding:"required,positivedecimal"`
	Rate         *decimal.Decimal `json:"rate"`
}

// WalletResponse defines the data returned for a wallet, including its
// ledger-computed balance.
type WalletResponse struct {
	WalletID     string          `json:"walletID"`
	Name         string          `json:"name"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToWalletResponse converts a domain.Wallet to WalletResponse DTO
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID:     w.WalletID,
		Name:         w.Name,
		CurrencyCode: w.CurrencyCode,
		Balance:      w.Balance,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}

// ToWalletResponses converts a slice of wallets.
func ToWalletResponses(ws []domain.Wallet) []WalletResponse {
	out := make([]WalletResponse, len(ws))
	for i := range ws {
		out[i] = ToWalletResponse(&ws[i])
	}
	return out
}
