package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fintrackr/fintrackr-backend/internal/apperrors"
	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/fintrackr-backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr-backend/internal/dto"
	"github.com/fintrackr/fintrackr-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// peerPaymentService implements the peer-payment request and direct-send flows.
//
// The two flows deliberately use opposite rate conventions. A request's
// amount is denominated in the requester's (destination) currency, so
// accepting converts BACKWARD: the payer's deduction is amount / rate. A
// direct send's amount is denominated in the sender's (source) currency, so
// the credited side is amount * rate, matching the wallet transfer engine.
type peerPaymentService struct {
	peerPaymentRepo portsrepo.PeerPaymentRepository
	walletRepo      portsrepo.WalletRepository
	ledgerRepo      portsrepo.LedgerRepository
	userRepo        portsrepo.UserRepository
	friendSvc       portssvc.FriendLinkSvc
	fxRate          portssvc.FxRateProvider
}

// NewPeerPaymentService creates a new peer payment service.
func NewPeerPaymentService(
	peerPaymentRepo portsrepo.PeerPaymentRepository,
	walletRepo portsrepo.WalletRepository,
	ledgerRepo portsrepo.LedgerRepository,
	userRepo portsrepo.UserRepository,
	friendSvc portssvc.FriendLinkSvc,
	fxRate portssvc.FxRateProvider,
) portssvc.PeerPaymentSvcFacade {
	return &peerPaymentService{
		peerPaymentRepo: peerPaymentRepo,
		walletRepo:      walletRepo,
		ledgerRepo:      ledgerRepo,
		userRepo:        userRepo,
		friendSvc:       friendSvc,
		fxRate:          fxRate,
	}
}

var _ portssvc.PeerPaymentSvcFacade = (*peerPaymentService)(nil)

// CreatePaymentRequest asks another user to fund one of the requester's wallets.
func (s *peerPaymentService) CreatePaymentRequest(ctx context.Context, requesterUserID string, req dto.CreatePeerPaymentRequestRequest) (*dto.PeerPaymentRequestResponse, error) {
	targetWallet, err := s.walletRepo.FindWalletForUser(ctx, requesterUserID, req.TargetWalletID)
	if err != nil {
		return nil, fmt.Errorf("%w: target wallet not found", apperrors.ErrValidation)
	}

	if req.PayerUserID == requesterUserID {
		return nil, fmt.Errorf("%w: cannot request payment from yourself", apperrors.ErrValidation)
	}
	if _, err := s.userRepo.FindUserByID(ctx, req.PayerUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: payer not found", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to resolve payer: %w", err)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be greater than 0", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	request := domain.PeerPaymentRequest{
		RequestID:       uuid.NewString(),
		RequesterUserID: requesterUserID,
		PayerUserID:     req.PayerUserID,
		TargetWalletID:  req.TargetWalletID,
		Amount:          req.Amount.Round(2),
		Note:            req.Note,
		Status:          domain.StatusPending,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.peerPaymentRepo.SaveRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to save payment request: %w", err)
	}

	resp := dto.ToPeerPaymentRequestResponse(&request, targetWallet.CurrencyCode)
	return &resp, nil
}

func (s *peerPaymentService) ListIncomingPaymentRequests(ctx context.Context, payerUserID string) ([]dto.PeerPaymentRequestResponse, error) {
	requests, err := s.peerPaymentRepo.ListPendingByPayer(ctx, payerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incoming payment requests: %w", err)
	}
	return s.composeResponses(ctx, requests)
}

func (s *peerPaymentService) ListOutgoingPaymentRequests(ctx context.Context, requesterUserID string) ([]dto.PeerPaymentRequestResponse, error) {
	requests, err := s.peerPaymentRepo.ListPendingByRequester(ctx, requesterUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outgoing payment requests: %w", err)
	}
	return s.composeResponses(ctx, requests)
}

func (s *peerPaymentService) composeResponses(ctx context.Context, requests []domain.PeerPaymentRequest) ([]dto.PeerPaymentRequestResponse, error) {
	out := make([]dto.PeerPaymentRequestResponse, 0, len(requests))
	for i := range requests {
		currency := ""
		if wallet, err := s.walletRepo.FindWalletByID(ctx, requests[i].TargetWalletID); err == nil {
			currency = wallet.CurrencyCode
		}
		out = append(out, dto.ToPeerPaymentRequestResponse(&requests[i], currency))
	}
	return out, nil
}

// AcceptPaymentRequest settles a Pending request from the payer's chosen wallet.
//
// The stored amount is in the TARGET wallet's currency, so the payer's
// deduction is round(amount / rate, 2), converting backward from destination
// to source. The debit/credit pair, the reserved categories and the request's
// Accepted stamp are persisted in one database transaction.
func (s *peerPaymentService) AcceptPaymentRequest(ctx context.Context, payerUserID, requestID string, req dto.AcceptPeerPaymentRequest) (*dto.PeerPaymentRequestResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.peerPaymentRepo.FindRequestForPayer(ctx, requestID, payerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment request: %w", err)
	}
	if request.Status != domain.StatusPending {
		return nil, fmt.Errorf("%w: request not pending", apperrors.ErrConflict)
	}

	fromWallet, err := s.walletRepo.FindWalletForUser(ctx, payerUserID, req.FromWalletID)
	if err != nil {
		return nil, fmt.Errorf("%w: source wallet not found", apperrors.ErrValidation)
	}

	targetWallet, err := s.walletRepo.FindWalletByID(ctx, request.TargetWalletID)
	if err != nil {
		return nil, fmt.Errorf("%w: target wallet not found", apperrors.ErrValidation)
	}

	var rate decimal.Decimal
	if req.Rate != nil {
		rate = *req.Rate
	} else {
		rate = s.fxRate.Rate(ctx, fromWallet.CurrencyCode, targetWallet.CurrencyCode)
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: invalid FX rate", apperrors.ErrConflict)
	}

	sourceAmountNeeded := request.Amount.Div(rate).Round(2)

	fromBalance, err := s.ledgerRepo.SumWalletBalance(ctx, payerUserID, req.FromWalletID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute source wallet balance: %w", err)
	}
	if fromBalance.LessThan(sourceAmountNeeded) {
		return nil, fmt.Errorf("%w: insufficient balance", apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	posting := domain.TransferPosting{
		SourceWalletID:  req.FromWalletID,
		RequiredBalance: sourceAmountNeeded,
		Debit: domain.LedgerEntry{
			EntryID:   uuid.NewString(),
			UserID:    payerUserID,
			WalletID:  req.FromWalletID,
			Amount:    sourceAmountNeeded,
			Direction: domain.Debit,
			Date:      now,
			Note:      fmt.Sprintf("Peer transfer to %s", s.friendSvc.DisplayNameFor(ctx, payerUserID, request.RequesterUserID)),
			Timestamps: domain.Timestamps{
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		DebitCategory: domain.CategoryKey{Name: domain.PeerTransferCategory, Kind: domain.Expense},
		Credit: domain.LedgerEntry{
			EntryID:   uuid.NewString(),
			UserID:    request.RequesterUserID,
			WalletID:  request.TargetWalletID,
			Amount:    request.Amount,
			Direction: domain.Credit,
			Date:      now,
			Note:      fmt.Sprintf("Peer transfer from %s", s.friendSvc.DisplayNameFor(ctx, request.RequesterUserID, payerUserID)),
			Timestamps: domain.Timestamps{
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		CreditCategory: domain.CategoryKey{Name: domain.PeerTransferCategory, Kind: domain.Income},
	}

	request.Status = domain.StatusAccepted
	request.UpdatedAt = now
	request.ResolvedAt = &now
	request.FromWalletID = &req.FromWalletID
	request.RateUsed = &rate

	if err := s.peerPaymentRepo.SettleRequest(ctx, *request, posting); err != nil {
		return nil, fmt.Errorf("failed to settle payment request: %w", err)
	}

	logger.Info("Peer payment request settled",
		slog.String("request_id", request.RequestID),
		slog.String("amount", request.Amount.String()),
		slog.String("source_amount", sourceAmountNeeded.String()),
		slog.String("rate", rate.String()),
	)

	resp := dto.ToPeerPaymentRequestResponse(request, targetWallet.CurrencyCode)
	return &resp, nil
}

// RejectPaymentRequest stamps a Pending request Rejected. False when no
// Pending row matches the payer.
func (s *peerPaymentService) RejectPaymentRequest(ctx context.Context, payerUserID, requestID string) (bool, error) {
	request, err := s.peerPaymentRepo.FindRequestForPayer(ctx, requestID, payerUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get payment request: %w", err)
	}
	return s.resolve(ctx, request, domain.StatusRejected)
}

// CancelPaymentRequest stamps the requester's own Pending request Cancelled.
func (s *peerPaymentService) CancelPaymentRequest(ctx context.Context, requesterUserID, requestID string) (bool, error) {
	request, err := s.peerPaymentRepo.FindRequestForRequester(ctx, requestID, requesterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get payment request: %w", err)
	}
	return s.resolve(ctx, request, domain.StatusCancelled)
}

func (s *peerPaymentService) resolve(ctx context.Context, request *domain.PeerPaymentRequest, status domain.RequestStatus) (bool, error) {
	if request.Status != domain.StatusPending {
		return false, nil
	}
	now := time.Now().UTC()
	request.Status = status
	request.UpdatedAt = now
	request.ResolvedAt = &now
	if err := s.peerPaymentRepo.UpdateRequest(ctx, *request); err != nil {
		return false, fmt.Errorf("failed to resolve payment request: %w", err)
	}
	return true, nil
}

// SendPayment pushes money straight into the recipient's named wallet.
//
// Amount is in the SOURCE wallet's currency: the sender is debited amount
// and the recipient credited round(amount * rate, 2), the multiply
// convention, unlike the request-accept flow above. No friendship check is
// performed; any two valid user/wallet pairs can transact.
func (s *peerPaymentService) SendPayment(ctx context.Context, senderUserID string, req dto.SendPeerPaymentRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.RecipientUserID == senderUserID {
		return fmt.Errorf("%w: cannot send to yourself", apperrors.ErrValidation)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be greater than 0", apperrors.ErrValidation)
	}

	fromWallet, err := s.walletRepo.FindWalletForUser(ctx, senderUserID, req.FromWalletID)
	if err != nil {
		return fmt.Errorf("%w: source wallet not found", apperrors.ErrValidation)
	}

	targetWallet, err := s.walletRepo.FindWalletForUser(ctx, req.RecipientUserID, req.TargetWalletID)
	if err != nil {
		return fmt.Errorf("%w: target wallet not found", apperrors.ErrValidation)
	}

	fromBalance, err := s.ledgerRepo.SumWalletBalance(ctx, senderUserID, req.FromWalletID)
	if err != nil {
		return fmt.Errorf("failed to compute source wallet balance: %w", err)
	}
	if fromBalance.LessThan(req.Amount) {
		return fmt.Errorf("%w: insufficient balance", apperrors.ErrConflict)
	}

	var rate decimal.Decimal
	if req.Rate != nil {
		rate = *req.Rate
	} else {
		rate = s.fxRate.Rate(ctx, fromWallet.CurrencyCode, targetWallet.CurrencyCode)
	}

	debitNote := req.Note
	if debitNote == "" {
		debitNote = fmt.Sprintf("Peer transfer to %s", s.friendSvc.DisplayNameFor(ctx, senderUserID, req.RecipientUserID))
	}
	creditNote := req.Note
	if creditNote == "" {
		creditNote = fmt.Sprintf("Peer transfer from %s", s.friendSvc.DisplayNameFor(ctx, req.RecipientUserID, senderUserID))
	}

	now := time.Now().UTC()
	posting := domain.TransferPosting{
		SourceWalletID:  req.FromWalletID,
		RequiredBalance: req.Amount,
		Debit: domain.LedgerEntry{
			EntryID:   uuid.NewString(),
			UserID:    senderUserID,
			WalletID:  req.FromWalletID,
			Amount:    req.Amount,
			Direction: domain.Debit,
			Date:      now,
			Note:      debitNote,
			Timestamps: domain.Timestamps{
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		DebitCategory: domain.CategoryKey{Name: domain.PeerTransferCategory, Kind: domain.Expense},
		Credit: domain.LedgerEntry{
			EntryID:   uuid.NewString(),
			UserID:    req.RecipientUserID,
			WalletID:  req.TargetWalletID,
			Amount:    req.Amount.Mul(rate).Round(2),
			Direction: domain.Credit,
			Date:      now,
			Note:      creditNote,
			Timestamps: domain.Timestamps{
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		CreditCategory: domain.CategoryKey{Name: domain.PeerTransferCategory, Kind: domain.Income},
	}

	if err := s.ledgerRepo.PostTransfer(ctx, posting); err != nil {
		return fmt.Errorf("failed to post peer payment: %w", err)
	}

	logger.Info("Peer payment sent",
		slog.String("from_wallet_id", req.FromWalletID),
		slog.String("target_wallet_id", req.TargetWalletID),
		slog.String("amount", req.Amount.String()),
		slog.String("rate", rate.String()),
	)
	return nil
}
