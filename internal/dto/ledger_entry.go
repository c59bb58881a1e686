package dto

import (
	"time"

	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest defines the data needed to record a ledger entry.
type CreateEntryRequest struct {
	WalletID   string                `json:"walletID" binding:"required"`
	Amount     decimal.Decimal       `json:"amount" binding:"required,positivedecimal"`
	Direction  domain.EntryDirection `json:"direction" binding:"required,oneof=CREDIT DEBIT"`
	CategoryID string                `json:"categoryID" binding:"required"`
	Date       time.Time             `json:"date" binding:"required"`
	Note       string                `json:"note"`
}

// UpdateEntryRequest defines the fields individually patchable on an entry.
// Pointers distinguish "not provided" from zero values.
type UpdateEntryRequest struct {
	Amount     *decimal.Decimal       `json:"amount"`
	Direction  *domain.EntryDirection `json:"direction" binding:"omitempty,oneof=CREDIT DEBIT"`
	CategoryID *string                `json:"categoryID"`
	Date       *time.Time             `json:"date"`
	Note       *string                `json:"note"`
}

// ListEntriesParams narrows entry listings; all fields optional.
type ListEntriesParams struct {
	WalletID  *string
	Direction *domain.EntryDirection
	DateFrom  *time.Time
	DateTo    *time.Time
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID      string                `json:"entryID"`
	WalletID     string                `json:"walletID"`
	Amount       decimal.Decimal       `json:"amount"`
	Direction    domain.EntryDirection `json:"direction"`
	CategoryID   string                `json:"categoryID"`
	CategoryName string                `json:"categoryName,omitempty"`
	Date         time.Time             `json:"date"`
	Note         string                `json:"note"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// ToEntryResponse converts a domain.LedgerEntry to EntryResponse DTO
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:    e.EntryID,
		WalletID:   e.WalletID,
		Amount:     e.Amount,
		Direction:  e.Direction,
		CategoryID: e.CategoryID,
		Date:       e.Date,
		Note:       e.Note,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// ToEntryResponses converts a slice of entries.
func ToEntryResponses(es []domain.LedgerEntry) []EntryResponse {
	out := make([]EntryResponse, len(es))
	for i := range es {
		out[i] = ToEntryResponse(&es[i])
	}
	return out
}
