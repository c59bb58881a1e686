package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeerPaymentRequest asks PayerUserID to fund RequesterUserID's target wallet.
// Amount is denominated in the TARGET wallet's currency; on acceptance the
// payer's deduction is derived from it by dividing by the FX rate.
// FromWalletID and RateUsed are stamped when the request is accepted.
type PeerPaymentRequest struct {
	RequestID       string          `json:"requestID"` // Primary Key (UUID)
	RequesterUserID string          `json:"requesterUserID"`
	PayerUserID     string          `json:"payerUserID"`
	TargetWalletID  string          `json:"targetWalletID"` // Requester's receiving wallet
	Amount          decimal.Decimal `json:"amount"`
	Note            string          `json:"note"`
	Status          RequestStatus   `json:"status"`
	Timestamps
	ResolvedAt   *time.Time       `json:"resolvedAt,omitempty"`
	FromWalletID *string          `json:"fromWalletID,omitempty"`
	RateUsed     *decimal.Decimal `json:"rateUsed,omitempty"`
}
