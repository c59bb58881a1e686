package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeerPaymentRequest is the database representation of a peer-payment
// request. FromWalletID and RateUsed are NULL until the request is accepted.
type PeerPaymentRequest struct {
	RequestID       string          `db:"request_id"`
	RequesterUserID string          `db:"requester_user_id"`
	PayerUserID     string          `db:"payer_user_id"`
	TargetWalletID  string          `db:"target_wallet_id"`
	Amount          decimal.Decimal `db:"amount"`
	Note            string          `db:"note"`
	Status          string          `db:"status"`
	Timestamps
	ResolvedAt   *time.Time       `db:"resolved_at"`
	FromWalletID *string          `db:"from_wallet_id"`
	RateUsed     *decimal.Decimal `db:"rate_used"`
}
