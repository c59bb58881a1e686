package models

// Wallet is the database representation of a wallet. Balance is never
// stored; it is always recomputed from ledger entries.
type Wallet struct {
	WalletID     string `db:"wallet_id"`
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	CurrencyCode string `db:"currency_code"`
	Timestamps
}
