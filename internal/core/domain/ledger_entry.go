package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryDirection indicates whether a ledger entry adds to or subtracts from a wallet.
type EntryDirection string

const (
	Credit EntryDirection = "CREDIT"
	Debit  EntryDirection = "DEBIT"
)

// LedgerEntry is one signed monetary record against a wallet. Amount is always
// positive; Direction carries the sign. A transfer is two independent entries,
// one Debit in the source wallet and one Credit in the destination wallet.
type LedgerEntry struct {
	EntryID    string          `json:"entryID"` // Primary Key (UUID)
	UserID     string          `json:"userID"`  // FK -> users.user_id
	WalletID   string          `json:"walletID"`
	Amount     decimal.Decimal `json:"amount"` // Positive, 2dp
	Direction  EntryDirection  `json:"direction"`
	CategoryID string          `json:"categoryID"`
	Date       time.Time       `json:"date"`
	Note       string          `json:"note"`
	Timestamps
}

// SignedAmount returns the entry's contribution to its wallet balance:
// positive for Credit, negative for Debit.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Direction == Debit {
		return e.Amount.Neg()
	}
	return e.Amount
}
