package domain

import "github.com/shopspring/decimal"

// Wallet is a named, single-currency account bucket owned by one user.
// (UserID, Name) is unique per user, enforced by the storage layer.
type Wallet struct {
	WalletID     string `json:"walletID"` // Primary Key (UUID)
	UserID       string `json:"userID"`   // FK -> users.user_id
	Name         string `json:"name"`
	CurrencyCode string `json:"currencyCode"` // ISO-4217, 3 letters, uppercase
	Timestamps
	Balance decimal.Decimal `json:"balance"` // Computed at read time from ledger entries, never stored
}

// DefaultWalletName and DefaultWalletCurrency describe the wallet provisioned
// for every user on registration.
const (
	DefaultWalletName     = "Main"
	DefaultWalletCurrency = "USD"
)
