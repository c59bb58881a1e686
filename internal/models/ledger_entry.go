package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the database representation of one signed monetary record.
type LedgerEntry struct {
	EntryID    string          `db:"entry_id"`
	UserID     string          `db:"user_id"`
	WalletID   string          `db:"wallet_id"`
	Amount     decimal.Decimal `db:"amount"`
	Direction  string          `db:"direction"`
	CategoryID string          `db:"category_id"`
	Date       time.Time       `db:"entry_date"`
	Note       string          `db:"note"`
	Timestamps
}
