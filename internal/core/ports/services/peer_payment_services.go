package services

import (
	"context"

	"github.com/fintrackr/fintrackr-backend/internal/dto"
)

// PeerPaymentRequestSvc drives the money-request side of peer payments.
type PeerPaymentRequestSvc interface {
	// CreatePaymentRequest asks another user to pay into one of the
	// requester's wallets. The target wallet must belong to the requester
	// and the payer must be a different, existing user. Friendship is not
	// checked here; the client restricts peer discovery.
	CreatePaymentRequest(ctx context.Context, requesterUserID string, req dto.CreatePeerPaymentRequestRequest) (*dto.PeerPaymentRequestResponse, error)

	// ListIncomingPaymentRequests lists Pending requests the user is asked to pay.
	ListIncomingPaymentRequests(ctx context.Context, payerUserID string) ([]dto.PeerPaymentRequestResponse, error)

	// ListOutgoingPaymentRequests lists Pending requests the user has raised.
	ListOutgoingPaymentRequests(ctx context.Context, requesterUserID string) ([]dto.PeerPaymentRequestResponse, error)

	// AcceptPaymentRequest settles a Pending request from the payer's chosen
	// wallet. The requested amount is denominated in the target wallet's
	// currency; the payer's side is derived by dividing by the rate.
	AcceptPaymentRequest(ctx context.Context, payerUserID, requestID string, req dto.AcceptPeerPaymentRequest) (*dto.PeerPaymentRequestResponse, error)

	// RejectPaymentRequest stamps a Pending request Rejected. False when no
	// Pending row matches the payer.
	RejectPaymentRequest(ctx context.Context, payerUserID, requestID string) (bool, error)

	// CancelPaymentRequest stamps the requester's own Pending request
	// Cancelled. False when no Pending row matches.
	CancelPaymentRequest(ctx context.Context, requesterUserID, requestID string) (bool, error)
}

// PeerPaymentSendSvc covers unsolicited payments to another user's wallet.
type PeerPaymentSendSvc interface {
	// SendPayment moves money from the sender's wallet straight into the
	// recipient's named wallet. The amount is denominated in the sender's
	// currency; the receiving side is derived by multiplying by the rate.
	SendPayment(ctx context.Context, senderUserID string, req dto.SendPeerPaymentRequest) error
}

// PeerPaymentSvcFacade combines all peer payment service interfaces
type PeerPaymentSvcFacade interface {
	PeerPaymentRequestSvc
	PeerPaymentSendSvc
}
