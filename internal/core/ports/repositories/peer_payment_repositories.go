package repositories

import (
	"context"

	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
)

// PeerPaymentReader defines read operations for peer-payment requests
type PeerPaymentReader interface {
	// FindRequestForPayer retrieves a request scoped to its payer.
	FindRequestForPayer(ctx context.Context, requestID, payerUserID string) (*domain.PeerPaymentRequest, error)

	// FindRequestForRequester retrieves a request scoped to its requester.
	FindRequestForRequester(ctx context.Context, requestID, requesterUserID string) (*domain.PeerPaymentRequest, error)

	// ListPendingByPayer retrieves Pending requests a user is asked to pay, newest-first.
	ListPendingByPayer(ctx context.Context, payerUserID string) ([]domain.PeerPaymentRequest, error)

	// ListPendingByRequester retrieves Pending requests a user has sent, newest-first.
	ListPendingByRequester(ctx context.Context, requesterUserID string) ([]domain.PeerPaymentRequest, error)
}

// PeerPaymentWriter defines write operations for peer-payment requests
type PeerPaymentWriter interface {
	// SaveRequest persists a new request.
	SaveRequest(ctx context.Context, req domain.PeerPaymentRequest) error

	// UpdateRequest rewrites a request's status and resolution stamps.
	UpdateRequest(ctx context.Context, req domain.PeerPaymentRequest) error

	// SettleRequest posts the debit/credit entry pair and marks the request
	// Accepted in ONE database transaction: the payer wallet is locked and
	// balance-checked, the reserved categories upserted, both entries
	// inserted and the request updated, or none of it.
	SettleRequest(ctx context.Context, req domain.PeerPaymentRequest, posting domain.TransferPosting) error
}

// PeerPaymentRepository combines all peer-payment repository interfaces
type PeerPaymentRepository interface {
	PeerPaymentReader
	PeerPaymentWriter
}
