package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr-backend/internal/core/ports/repositories"
	"github.com/fintrackr/fintrackr-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// MockUserRepository is a mock type for the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockWalletRepository is a mock type for the WalletRepository interface
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) FindWalletForUser(ctx context.Context, userID, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateWallet(ctx context.Context, wallet domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) DeleteWallet(ctx context.Context, userID, walletID string) error {
	args := m.Called(ctx, userID, walletID)
	return args.Error(0)
}

// MockLedgerRepository is a mock type for the LedgerRepository interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntryForUser(ctx context.Context, userID, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByUser(ctx context.Context, userID string, filter portsrepo.EntryFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SumWalletBalance(ctx context.Context, userID, walletID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, walletID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) SumBalancesByWallet(ctx context.Context, userID string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) CountEntriesByWallet(ctx context.Context, userID, walletID string) (int64, error) {
	args := m.Called(ctx, userID, walletID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteEntry(ctx context.Context, userID, entryID string) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}

func (m *MockLedgerRepository) PostTransfer(ctx context.Context, posting domain.TransferPosting) error {
	args := m.Called(ctx, posting)
	return args.Error(0)
}

// MockCategoryRepository is a mock type for the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) HasAnyCategories(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetOrCreateCategory(ctx context.Context, key domain.CategoryKey) (*domain.Category, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

// MockFriendRepository is a mock type for the FriendRepository interface
type MockFriendRepository struct {
	mock.Mock
}

func (m *MockFriendRepository) FindLink(ctx context.Context, userID, friendUserID string) (*domain.FriendLink, error) {
	args := m.Called(ctx, userID, friendUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FriendLink), args.Error(1)
}

func (m *MockFriendRepository) AnyLinkBetween(ctx context.Context, userA, userB string) (bool, error) {
	args := m.Called(ctx, userA, userB)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendRepository) ListLinksByUser(ctx context.Context, userID string) ([]domain.FriendLink, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FriendLink), args.Error(1)
}

func (m *MockFriendRepository) UpdateLinkNickname(ctx context.Context, link domain.FriendLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockFriendRepository) DeleteLinkPair(ctx context.Context, userA, userB string) (int64, error) {
	args := m.Called(ctx, userA, userB)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFriendRepository) FindRequestForReceiver(ctx context.Context, requestID, receiverUserID string) (*domain.FriendRequest, error) {
	args := m.Called(ctx, requestID, receiverUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FriendRequest), args.Error(1)
}

func (m *MockFriendRepository) FindRequestForRequester(ctx context.Context, requestID, requesterUserID string) (*domain.FriendRequest, error) {
	args := m.Called(ctx, requestID, requesterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FriendRequest), args.Error(1)
}

func (m *MockFriendRepository) FindRequestBetween(ctx context.Context, requesterUserID, receiverUserID string) (*domain.FriendRequest, error) {
	args := m.Called(ctx, requesterUserID, receiverUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FriendRequest), args.Error(1)
}

func (m *MockFriendRepository) FindPendingBetween(ctx context.Context, requesterUserID, receiverUserID string) (*domain.FriendRequest, error) {
	args := m.Called(ctx, requesterUserID, receiverUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FriendRequest), args.Error(1)
}

func (m *MockFriendRepository) ListPendingByReceiver(ctx context.Context, receiverUserID string) ([]domain.FriendRequest, error) {
	args := m.Called(ctx, receiverUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FriendRequest), args.Error(1)
}

func (m *MockFriendRepository) ListPendingByRequester(ctx context.Context, requesterUserID string) ([]domain.FriendRequest, error) {
	args := m.Called(ctx, requesterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FriendRequest), args.Error(1)
}

func (m *MockFriendRepository) SaveRequest(ctx context.Context, req domain.FriendRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockFriendRepository) UpdateRequest(ctx context.Context, req domain.FriendRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockFriendRepository) AcceptRequest(ctx context.Context, req domain.FriendRequest, links []domain.FriendLink) error {
	args := m.Called(ctx, req, links)
	return args.Error(0)
}

// MockPeerPaymentRepository is a mock type for the PeerPaymentRepository interface
type MockPeerPaymentRepository struct {
	mock.Mock
}

func (m *MockPeerPaymentRepository) FindRequestForPayer(ctx context.Context, requestID, payerUserID string) (*domain.PeerPaymentRequest, error) {
	args := m.Called(ctx, requestID, payerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeerPaymentRequest), args.Error(1)
}

func (m *MockPeerPaymentRepository) FindRequestForRequester(ctx context.Context, requestID, requesterUserID string) (*domain.PeerPaymentRequest, error) {
	args := m.Called(ctx, requestID, requesterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeerPaymentRequest), args.Error(1)
}

func (m *MockPeerPaymentRepository) ListPendingByPayer(ctx context.Context, payerUserID string) ([]domain.PeerPaymentRequest, error) {
	args := m.Called(ctx, payerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PeerPaymentRequest), args.Error(1)
}

func (m *MockPeerPaymentRepository) ListPendingByRequester(ctx context.Context, requesterUserID string) ([]domain.PeerPaymentRequest, error) {
	args := m.Called(ctx, requesterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PeerPaymentRequest), args.Error(1)
}

func (m *MockPeerPaymentRepository) SaveRequest(ctx context.Context, req domain.PeerPaymentRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockPeerPaymentRepository) UpdateRequest(ctx context.Context, req domain.PeerPaymentRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockPeerPaymentRepository) SettleRequest(ctx context.Context, req domain.PeerPaymentRequest, posting domain.TransferPosting) error {
	args := m.Called(ctx, req, posting)
	return args.Error(0)
}

// MockSavingsGoalRepository is a mock type for the SavingsGoalRepository interface
type MockSavingsGoalRepository struct {
	mock.Mock
}

func (m *MockSavingsGoalRepository) SaveGoal(ctx context.Context, goal domain.SavingsGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockSavingsGoalRepository) FindGoalForUser(ctx context.Context, userID, goalID string) (*domain.SavingsGoal, error) {
	args := m.Called(ctx, userID, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsGoal), args.Error(1)
}

func (m *MockSavingsGoalRepository) ListGoalsByUser(ctx context.Context, userID string, walletID *string) ([]domain.SavingsGoal, error) {
	args := m.Called(ctx, userID, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavingsGoal), args.Error(1)
}

func (m *MockSavingsGoalRepository) UpdateGoal(ctx context.Context, goal domain.SavingsGoal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockSavingsGoalRepository) DeleteGoal(ctx context.Context, userID, goalID string) error {
	args := m.Called(ctx, userID, goalID)
	return args.Error(0)
}

// MockFxRateProvider is a mock type for the FxRateProvider interface
type MockFxRateProvider struct {
	mock.Mock
}

func (m *MockFxRateProvider) Rate(ctx context.Context, from, to string) decimal.Decimal {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal)
}

// MockFriendLinkSvc is a mock type for the FriendLinkSvc interface
type MockFriendLinkSvc struct {
	mock.Mock
}

func (m *MockFriendLinkSvc) ListFriends(ctx context.Context, userID string) ([]dto.FriendResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.FriendResponse), args.Error(1)
}

func (m *MockFriendLinkSvc) UpdateNickname(ctx context.Context, userID, friendUserID string, req dto.UpdateFriendNicknameRequest) (*dto.FriendResponse, error) {
	args := m.Called(ctx, userID, friendUserID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FriendResponse), args.Error(1)
}

func (m *MockFriendLinkSvc) RemoveFriend(ctx context.Context, userID, friendUserID string) (bool, error) {
	args := m.Called(ctx, userID, friendUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendLinkSvc) ListFriendWallets(ctx context.Context, userID, friendUserID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, userID, friendUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockFriendLinkSvc) DisplayNameFor(ctx context.Context, viewerUserID, otherUserID string) string {
	args := m.Called(ctx, viewerUserID, otherUserID)
	return args.String(0)
}

// MockWalletWriterSvc is a mock type for the WalletWriterSvc interface
type MockWalletWriterSvc struct {
	mock.Mock
}

func (m *MockWalletWriterSvc) CreateWallet(ctx context.Context, userID string, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletWriterSvc) CreateDefaultWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletWriterSvc) UpdateWallet(ctx context.Context, userID, walletID string, req dto.UpdateWalletRequest) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, walletID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletWriterSvc) DeleteWallet(ctx context.Context, userID, walletID string) error {
	args := m.Called(ctx, userID, walletID)
	return args.Error(0)
}

// MockWalletReaderSvc is a mock type for the WalletReaderSvc interface
type MockWalletReaderSvc struct {
	mock.Mock
}

func (m *MockWalletReaderSvc) GetWallet(ctx context.Context, userID, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletReaderSvc) ListWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}
