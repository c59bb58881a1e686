package domain

import "github.com/shopspring/decimal"

// TransferPosting describes one value movement as a pair of ledger entries
// plus the balance guard on the source wallet. The repository persists the
// whole posting in one database transaction: the source wallet row is locked,
// its balance recomputed, the reserved categories upserted and both entries
// inserted, or nothing at all.
type TransferPosting struct {
	// SourceWalletID is locked FOR UPDATE for the duration of the posting.
	SourceWalletID string
	// RequiredBalance is the minimum balance the source wallet must hold
	// at posting time; the posting fails with a conflict below it.
	RequiredBalance decimal.Decimal

	Debit          LedgerEntry
	DebitCategory  CategoryKey
	Credit         LedgerEntry
	CreditCategory CategoryKey
}
