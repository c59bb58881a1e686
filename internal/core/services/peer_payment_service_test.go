package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintrackr/fintrackr-backend/internal/apperrors"
	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	portssvc "github.com/fintrackr/fintrackr-backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr-backend/internal/core/services"
	"github.com/fintrackr/fintrackr-backend/internal/dto"
)

type PeerPaymentServiceTestSuite struct {
	suite.Suite
	mockPeerRepo   *MockPeerPaymentRepository
	mockWalletRepo *MockWalletRepository
	mockLedgerRepo *MockLedgerRepository
	mockUserRepo   *MockUserRepository
	mockFriendSvc  *MockFriendLinkSvc
	mockFxRate     *MockFxRateProvider
	service        portssvc.PeerPaymentSvcFacade
}

func (suite *PeerPaymentServiceTestSuite) SetupTest() {
	suite.mockPeerRepo = new(MockPeerPaymentRepository)
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockFriendSvc = new(MockFriendLinkSvc)
	suite.mockFxRate = new(MockFxRateProvider)
	suite.service = services.NewPeerPaymentService(
		suite.mockPeerRepo,
		suite.mockWalletRepo,
		suite.mockLedgerRepo,
		suite.mockUserRepo,
		suite.mockFriendSvc,
		suite.mockFxRate,
	)
}

func (suite *PeerPaymentServiceTestSuite) newWallet(userID, name, currency string) *domain.Wallet {
	now := time.Now().UTC()
	return &domain.Wallet{
		WalletID:     uuid.NewString(),
		UserID:       userID,
		Name:         name,
		CurrencyCode: currency,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
}

func (suite *PeerPaymentServiceTestSuite) newPendingRequest(requesterUserID, payerUserID, targetWalletID string, amount decimal.Decimal) *domain.PeerPaymentRequest {
	now := time.Now().UTC()
	return &domain.PeerPaymentRequest{
		RequestID:       uuid.NewString(),
		RequesterUserID: requesterUserID,
		PayerUserID:     payerUserID,
		TargetWalletID:  targetWalletID,
		Amount:          amount,
		Status:          domain.StatusPending,
		Timestamps:      domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
}

func (suite *PeerPaymentServiceTestSuite) TestCreatePaymentRequest_Success() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	payerID := uuid.NewString()
	target := suite.newWallet(requesterID, "Main", "EUR")

	suite.mockWalletRepo.On("FindWalletForUser", ctx, requesterID, target.WalletID).Return(target, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, payerID).Return(&domain.User{UserID: payerID}, nil).Once()

	var saved domain.PeerPaymentRequest
	suite.mockPeerRepo.On("SaveRequest", ctx, mock.AnythingOfType("domain.PeerPaymentRequest")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.PeerPaymentRequest)
		}).Return(nil).Once()

	resp, err := suite.service.CreatePaymentRequest(ctx, requesterID, dto.CreatePeerPaymentRequestRequest{
		PayerUserID:    payerID,
		TargetWalletID: target.WalletID,
		Amount:         decimal.RequireFromString("10.005"),
		Note:           "dinner split",
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal(domain.StatusPending, saved.Status)
	suite.True(saved.Amount.Equal(decimal.RequireFromString("10.01")))
	suite.Equal("EUR", resp.TargetWalletCurrencyCode)
	suite.mockPeerRepo.AssertExpectations(suite.T())
}

func (suite *PeerPaymentServiceTestSuite) TestCreatePaymentRequest_SelfPayer() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	target := suite.newWallet(requesterID, "Main", "USD")

	suite.mockWalletRepo.On("FindWalletForUser", ctx, requesterID, target.WalletID).Return(target, nil).Once()

	resp, err := suite.service.CreatePaymentRequest(ctx, requesterID, dto.CreatePeerPaymentRequestRequest{
		PayerUserID:    requesterID,
		TargetWalletID: target.WalletID,
		Amount:         decimal.NewFromInt(10),
	})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPeerRepo.AssertNotCalled(suite.T(), "SaveRequest", mock.Anything, mock.Anything)
}

// Accepting converts backward: the stored amount is in the target wallet's
// currency, so the payer's deduction is amount / rate.
func (suite *PeerPaymentServiceTestSuite) TestAcceptPaymentRequest_DividesByRate() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	payerID := uuid.NewString()
	target := suite.newWallet(requesterID, "Main", "EUR")
	source := suite.newWallet(payerID, "Main", "USD")
	request := suite.newPendingRequest(requesterID, payerID, target.WalletID, decimal.NewFromInt(100))

	suite.mockPeerRepo.On("FindRequestForPayer", ctx, request.RequestID, payerID).Return(request, nil).Once()
	suite.mockWalletRepo.On("FindWalletForUser", ctx, payerID, source.WalletID).Return(source, nil).Once()
	suite.mockWalletRepo.On("FindWalletByID", ctx, target.WalletID).Return(target, nil).Once()
	suite.mockFxRate.On("Rate", ctx, "USD", "EUR").Return(decimal.NewFromInt(2)).Once()
	suite.mockLedgerRepo.On("SumWalletBalance", ctx, payerID, source.WalletID).Return(decimal.NewFromInt(500), nil).Once()
	suite.mockFriendSvc.On("DisplayNameFor", ctx, payerID, requesterID).Return("alice").Once()
	suite.mockFriendSvc.On("DisplayNameFor", ctx, requesterID, payerID).Return("bob").Once()

	var settled domain.PeerPaymentRequest
	var posting domain.TransferPosting
	suite.mockPeerRepo.On("SettleRequest", ctx, mock.AnythingOfType("domain.PeerPaymentRequest"), mock.AnythingOfType("domain.TransferPosting")).
		Run(func(args mock.Arguments) {
			settled = args.Get(1).(domain.PeerPaymentRequest)
			posting = args.Get(2).(domain.TransferPosting)
		}).Return(nil).Once()

	resp, err := suite.service.AcceptPaymentRequest(ctx, payerID, request.RequestID, dto.AcceptPeerPaymentRequest{
		FromWalletID: source.WalletID,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)

	// 100 EUR at rate 2 costs the payer 50 USD.
	suite.Equal(source.WalletID, posting.SourceWalletID)
	suite.True(posting.RequiredBalance.Equal(decimal.NewFromInt(50)))
	suite.True(posting.Debit.Amount.Equal(decimal.NewFromInt(50)))
	suite.Equal(payerID, posting.Debit.UserID)
	suite.Equal("Peer transfer to alice", posting.Debit.Note)
	suite.True(posting.Credit.Amount.Equal(decimal.NewFromInt(100)))
	suite.Equal(requesterID, posting.Credit.UserID)
	suite.Equal(target.WalletID, posting.Credit.WalletID)
	suite.Equal("Peer transfer from bob", posting.Credit.Note)
	suite.Equal(domain.CategoryKey{Name: domain.PeerTransferCategory, Kind: domain.Expense}, posting.DebitCategory)
	suite.Equal(domain.CategoryKey{Name: domain.PeerTransferCategory, Kind: domain.Income}, posting.CreditCategory)

	suite.Equal(domain.StatusAccepted, settled.Status)
	suite.Require().NotNil(settled.FromWalletID)
	suite.Equal(source.WalletID, *settled.FromWalletID)
	suite.Require().NotNil(settled.RateUsed)
	suite.True(settled.RateUsed.Equal(decimal.NewFromInt(2)))
	suite.NotNil(settled.ResolvedAt)

	suite.mockPeerRepo.AssertExpectations(suite.T())
	suite.mockFriendSvc.AssertExpectations(suite.T())
}

func (suite *PeerPaymentServiceTestSuite) TestAcceptPaymentRequest_ZeroRateConflict() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	payerID := uuid.NewString()
	target := suite.newWallet(requesterID, "Main", "EUR")
	source := suite.newWallet(payerID, "Main", "USD")
	request := suite.newPendingRequest(requesterID, payerID, target.WalletID, decimal.NewFromInt(100))
	zero := decimal.Zero

	suite.mockPeerRepo.On("FindRequestForPayer", ctx, request.RequestID, payerID).Return(request, nil).Once()
	suite.mockWalletRepo.On("FindWalletForUser", ctx, payerID, source.WalletID).Return(source, nil).Once()
	suite.mockWalletRepo.On("FindWalletByID", ctx, target.WalletID).Return(target, nil).Once()

	resp, err := suite.service.AcceptPaymentRequest(ctx, payerID, request.RequestID, dto.AcceptPeerPaymentRequest{
		FromWalletID: source.WalletID,
		Rate:         &zero,
	})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockFxRate.AssertNotCalled(suite.T(), "Rate", mock.Anything, mock.Anything, mock.Anything)
	suite.mockPeerRepo.AssertNotCalled(suite.T(), "SettleRequest", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeerPaymentServiceTestSuite) TestAcceptPaymentRequest_NotPending() {
	ctx := context.Background()
	payerID := uuid.NewString()
	request := suite.newPendingRequest(uuid.NewString(), payerID, uuid.NewString(), decimal.NewFromInt(10))
	request.Status = domain.StatusRejected

	suite.mockPeerRepo.On("FindRequestForPayer", ctx, request.RequestID, payerID).Return(request, nil).Once()

	resp, err := suite.service.AcceptPaymentRequest(ctx, payerID, request.RequestID, dto.AcceptPeerPaymentRequest{
		FromWalletID: uuid.NewString(),
	})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *PeerPaymentServiceTestSuite) TestAcceptPaymentRequest_InsufficientBalance() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	payerID := uuid.NewString()
	target := suite.newWallet(requesterID, "Main", "EUR")
	source := suite.newWallet(payerID, "Main", "USD")
	request := suite.newPendingRequest(requesterID, payerID, target.WalletID, decimal.NewFromInt(100))

	suite.mockPeerRepo.On("FindRequestForPayer", ctx, request.RequestID, payerID).Return(request, nil).Once()
	suite.mockWalletRepo.On("FindWalletForUser", ctx, payerID, source.WalletID).Return(source, nil).Once()
	suite.mockWalletRepo.On("FindWalletByID", ctx, target.WalletID).Return(target, nil).Once()
	suite.mockFxRate.On("Rate", ctx, "USD", "EUR").Return(decimal.NewFromInt(2)).Once()
	suite.mockLedgerRepo.On("SumWalletBalance", ctx, payerID, source.WalletID).Return(decimal.NewFromInt(10), nil).Once()

	resp, err := suite.service.AcceptPaymentRequest(ctx, payerID, request.RequestID, dto.AcceptPeerPaymentRequest{
		FromWalletID: source.WalletID,
	})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPeerRepo.AssertNotCalled(suite.T(), "SettleRequest", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeerPaymentServiceTestSuite) TestRejectPaymentRequest_NoMatch() {
	ctx := context.Background()
	payerID := uuid.NewString()
	requestID := uuid.NewString()

	suite.mockPeerRepo.On("FindRequestForPayer", ctx, requestID, payerID).Return(nil, apperrors.ErrNotFound).Once()

	ok, err := suite.service.RejectPaymentRequest(ctx, payerID, requestID)

	suite.Require().NoError(err)
	suite.False(ok)
}

func (suite *PeerPaymentServiceTestSuite) TestCancelPaymentRequest_Success() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	request := suite.newPendingRequest(requesterID, uuid.NewString(), uuid.NewString(), decimal.NewFromInt(25))

	suite.mockPeerRepo.On("FindRequestForRequester", ctx, request.RequestID, requesterID).Return(request, nil).Once()

	var updated domain.PeerPaymentRequest
	suite.mockPeerRepo.On("UpdateRequest", ctx, mock.AnythingOfType("domain.PeerPaymentRequest")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.PeerPaymentRequest)
		}).Return(nil).Once()

	ok, err := suite.service.CancelPaymentRequest(ctx, requesterID, request.RequestID)

	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal(domain.StatusCancelled, updated.Status)
	suite.NotNil(updated.ResolvedAt)
}

func (suite *PeerPaymentServiceTestSuite) TestCancelPaymentRequest_AlreadyResolved() {
	ctx := context.Background()
	requesterID := uuid.NewString()
	request := suite.newPendingRequest(requesterID, uuid.NewString(), uuid.NewString(), decimal.NewFromInt(25))
	request.Status = domain.StatusAccepted

	suite.mockPeerRepo.On("FindRequestForRequester", ctx, request.RequestID, requesterID).Return(request, nil).Once()

	ok, err := suite.service.CancelPaymentRequest(ctx, requesterID, request.RequestID)

	suite.Require().NoError(err)
	suite.False(ok)
	suite.mockPeerRepo.AssertNotCalled(suite.T(), "UpdateRequest", mock.Anything, mock.Anything)
}

// Sending converts forward: the amount is in the source wallet's currency and
// the recipient is credited amount * rate.
func (suite *PeerPaymentServiceTestSuite) TestSendPayment_MultipliesByRate() {
	ctx := context.Background()
	senderID := uuid.NewString()
	recipientID := uuid.NewString()
	source := suite.newWallet(senderID, "Main", "USD")
	target := suite.newWallet(recipientID, "Main", "EUR")

	suite.mockWalletRepo.On("FindWalletForUser", ctx, senderID, source.WalletID).Return(source, nil).Once()
	suite.mockWalletRepo.On("FindWalletForUser", ctx, recipientID, target.WalletID).Return(target, nil).Once()
	suite.mockLedgerRepo.On("SumWalletBalance", ctx, senderID, source.WalletID).Return(decimal.NewFromInt(500), nil).Once()
	suite.mockFxRate.On("Rate", ctx, "USD", "EUR").Return(decimal.NewFromInt(2)).Once()
	suite.mockFriendSvc.On("DisplayNameFor", ctx, senderID, recipientID).Return("carol").Once()
	suite.mockFriendSvc.On("DisplayNameFor", ctx, recipientID, senderID).Return("dave").Once()

	var posting domain.TransferPosting
	suite.mockLedgerRepo.On("PostTransfer", ctx, mock.AnythingOfType("domain.TransferPosting")).
		Run(func(args mock.Arguments) {
			posting = args.Get(1).(domain.TransferPosting)
		}).Return(nil).Once()

	err := suite.service.SendPayment(ctx, senderID, dto.SendPeerPaymentRequest{
		RecipientUserID: recipientID,
		FromWalletID:    source.WalletID,
		TargetWalletID:  target.WalletID,
		Amount:          decimal.NewFromInt(100),
	})

	suite.Require().NoError(err)
	suite.True(posting.RequiredBalance.Equal(decimal.NewFromInt(100)))
	suite.True(posting.Debit.Amount.Equal(decimal.NewFromInt(100)))
	suite.Equal("Peer transfer to carol", posting.Debit.Note)
	suite.True(posting.Credit.Amount.Equal(decimal.NewFromInt(200)))
	suite.Equal(recipientID, posting.Credit.UserID)
	suite.Equal("Peer transfer from dave", posting.Credit.Note)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PeerPaymentServiceTestSuite) TestSendPayment_CustomNoteUsedVerbatim() {
	ctx := context.Background()
	senderID := uuid.NewString()
	recipientID := uuid.NewString()
	source := suite.newWallet(senderID, "Main", "USD")
	target := suite.newWallet(recipientID, "Main", "USD")
	rate := decimal.NewFromInt(1)

	suite.mockWalletRepo.On("FindWalletForUser", ctx, senderID, source.WalletID).Return(source, nil).Once()
	suite.mockWalletRepo.On("FindWalletForUser", ctx, recipientID, target.WalletID).Return(target, nil).Once()
	suite.mockLedgerRepo.On("SumWalletBalance", ctx, senderID, source.WalletID).Return(decimal.NewFromInt(500), nil).Once()

	var posting domain.TransferPosting
	suite.mockLedgerRepo.On("PostTransfer", ctx, mock.AnythingOfType("domain.TransferPosting")).
		Run(func(args mock.Arguments) {
			posting = args.Get(1).(domain.TransferPosting)
		}).Return(nil).Once()

	err := suite.service.SendPayment(ctx, senderID, dto.SendPeerPaymentRequest{
		RecipientUserID: recipientID,
		FromWalletID:    source.WalletID,
		TargetWalletID:  target.WalletID,
		Amount:          decimal.NewFromInt(20),
		Note:            "rent share",
		Rate:            &rate,
	})

	suite.Require().NoError(err)
	suite.Equal("rent share", posting.Debit.Note)
	suite.Equal("rent share", posting.Credit.Note)
	suite.mockFriendSvc.AssertNotCalled(suite.T(), "DisplayNameFor", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeerPaymentServiceTestSuite) TestSendPayment_ToSelf() {
	ctx := context.Background()
	senderID := uuid.NewString()

	err := suite.service.SendPayment(ctx, senderID, dto.SendPeerPaymentRequest{
		RecipientUserID: senderID,
		FromWalletID:    uuid.NewString(),
		TargetWalletID:  uuid.NewString(),
		Amount:          decimal.NewFromInt(10),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PeerPaymentServiceTestSuite) TestSendPayment_InsufficientBalance() {
	ctx := context.Background()
	senderID := uuid.NewString()
	recipientID := uuid.NewString()
	source := suite.newWallet(senderID, "Main", "USD")
	target := suite.newWallet(recipientID, "Main", "USD")

	suite.mockWalletRepo.On("FindWalletForUser", ctx, senderID, source.WalletID).Return(source, nil).Once()
	suite.mockWalletRepo.On("FindWalletForUser", ctx, recipientID, target.WalletID).Return(target, nil).Once()
	suite.mockLedgerRepo.On("SumWalletBalance", ctx, senderID, source.WalletID).Return(decimal.NewFromInt(5), nil).Once()

	err := suite.service.SendPayment(ctx, senderID, dto.SendPeerPaymentRequest{
		RecipientUserID: recipientID,
		FromWalletID:    source.WalletID,
		TargetWalletID:  target.WalletID,
		Amount:          decimal.NewFromInt(100),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "PostTransfer", mock.Anything, mock.Anything)
}

func TestPeerPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeerPaymentServiceTestSuite))
}
