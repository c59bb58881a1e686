package dto

import (
	"time"

	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePeerPaymentRequestRequest asks another user to fund one of the
// caller's wallets. Amount is denominated in the target wallet's currency.
type CreatePeerPaymentRequestRequest struct {
	PayerUserID    string          `json:"payerUserID" binding:"required"`
	TargetWalletID string          `json:"targetWalletID" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required,positivedecimal"`
	Note           string          `json:"note"`
}

// AcceptPeerPaymentRequest names the payer's source wallet and optionally
// overrides the FX rate.
type AcceptPeerPaymentRequest struct {
	FromWalletID string           `json:"fromWalletID" binding:"required"`
	Rate         *decimal.Decimal `json:"rate"`
}

// SendPeerPaymentRequest pushes money to a recipient's wallet without a
// request. Amount is denominated in the SOURCE wallet's currency.
type SendPeerPaymentRequest struct {
	RecipientUserID string           `json:"recipientUserID" binding:"required"`
	FromWalletID    string           `json:"fromWalletID" binding:"required"`
	TargetWalletID  string           `json:"targetWalletID" binding:"required"`
	Amount          decimal.Decimal  `json:"amount" binding:"required,positivedecimal"`
	Note            string           `json:"note"`
	Rate            *decimal.Decimal `json:"rate"`
}

// PeerPaymentRequestResponse defines the data returned for a peer-payment request.
type PeerPaymentRequestResponse struct {
	RequestID                string               `json:"requestID"`
	RequesterUserID          string               `json:"requesterUserID"`
	PayerUserID              string               `json:"payerUserID"`
	TargetWalletID           string               `json:"targetWalletID"`
	TargetWalletCurrencyCode string               `json:"targetWalletCurrencyCode,omitempty"`
	Amount                   decimal.Decimal      `json:"amount"`
	Note                     string               `json:"note,omitempty"`
	Status                   domain.RequestStatus `json:"status"`
	CreatedAt                time.Time            `json:"createdAt"`
	UpdatedAt                time.Time            `json:"updatedAt"`
}

// ToPeerPaymentRequestResponse converts a domain request, attaching the
// target wallet's currency when known.
func ToPeerPaymentRequestResponse(r *domain.PeerPaymentRequest, targetCurrency string) PeerPaymentRequestResponse {
	return PeerPaymentRequestResponse{
		RequestID:                r.RequestID,
		RequesterUserID:          r.RequesterUserID,
		PayerUserID:              r.PayerUserID,
		TargetWalletID:           r.TargetWalletID,
		TargetWalletCurrencyCode: targetCurrency,
		Amount:                   r.Amount,
		Note:                     r.Note,
		Status:                   r.Status,
		CreatedAt:                r.CreatedAt,
		UpdatedAt:                r.UpdatedAt,
	}
}
