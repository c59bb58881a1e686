package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fintrackr/fintrackr-backend/internal/apperrors"
	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	portssvc "github.com/fintrackr/fintrackr-backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr-backend/internal/dto"
	"github.com/fintrackr/fintrackr-backend/internal/handlers"
	"github.com/fintrackr/fintrackr-backend/internal/middleware"
)

// --- Mock WalletService ---
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) GetWallet(ctx context.Context, userID, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) ListWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletService) CreateWallet(ctx context.Context, userID string, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) CreateDefaultWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) UpdateWallet(ctx context.Context, userID, walletID string, req dto.UpdateWalletRequest) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, walletID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) DeleteWallet(ctx context.Context, userID, walletID string) error {
	args := m.Called(ctx, userID, walletID)
	return args.Error(0)
}

func (m *MockWalletService) Transfer(ctx context.Context, userID, fromWalletID, toWalletID string, amount decimal.Decimal, customRate *decimal.Decimal) error {
	args := m.Called(ctx, userID, fromWalletID, toWalletID, amount, customRate)
	return args.Error(0)
}

var _ portssvc.WalletSvcFacade = (*MockWalletService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetEntry(ctx context.Context, userID, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) ListEntries(ctx context.Context, userID string, params dto.ListEntriesParams) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) WalletBalance(ctx context.Context, userID, walletID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, walletID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) CreateEntry(ctx context.Context, userID string, req dto.CreateEntryRequest) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) UpdateEntry(ctx context.Context, userID, entryID string, req dto.UpdateEntryRequest) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type WalletHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockWalletService *MockWalletService
	mockLedgerService *MockLedgerService
	jwtSecret         string
}

func (suite *WalletHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "fintrackr-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *WalletHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(dto.RegisterCustomValidations())
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockWalletService = new(MockWalletService)
	suite.mockLedgerService = new(MockLedgerService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterWalletRoutes(v1, suite.mockWalletService, suite.mockLedgerService)
}

func (suite *WalletHandlerTestSuite) authedRequest(method, url string, body []byte, userID string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *WalletHandlerTestSuite) TestListWallets_Success() {
	userID := uuid.NewString()
	now := time.Now().UTC()
	wallets := []domain.Wallet{
		{
			WalletID:     uuid.NewString(),
			UserID:       userID,
			Name:         "Main",
			CurrencyCode: "USD",
			Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
			Balance:      decimal.RequireFromString("250.50"),
		},
	}

	suite.mockWalletService.On("ListWallets", mock.Anything, userID).Return(wallets, nil).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/wallets", nil, userID)

	suite.Equal(http.StatusOK, w.Code)

	var body []dto.WalletResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body, 1)
	suite.Equal(wallets[0].WalletID, body[0].WalletID)
	suite.True(body[0].Balance.Equal(wallets[0].Balance))
	suite.mockWalletService.AssertExpectations(suite.T())
}

func (suite *WalletHandlerTestSuite) TestListWallets_RequiresToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/wallets", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockWalletService.AssertNotCalled(suite.T(), "ListWallets", mock.Anything, mock.Anything)
}

func (suite *WalletHandlerTestSuite) TestCreateWallet_Success() {
	userID := uuid.NewString()
	now := time.Now().UTC()
	created := &domain.Wallet{
		WalletID:     uuid.NewString(),
		UserID:       userID,
		Name:         "Holidays",
		CurrencyCode: "EUR",
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	suite.mockWalletService.On("CreateWallet", mock.Anything, userID, dto.CreateWalletRequest{
		Name:         "Holidays",
		CurrencyCode: "EUR",
	}).Return(created, nil).Once()

	body, _ := json.Marshal(gin.H{"name": "Holidays", "currencyCode": "EUR"})
	w := suite.authedRequest(http.MethodPost, "/api/v1/wallets", body, userID)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.WalletResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.WalletID, resp.WalletID)
	suite.mockWalletService.AssertExpectations(suite.T())
}

func (suite *WalletHandlerTestSuite) TestCreateWallet_RejectsBadCurrency() {
	userID := uuid.NewString()

	// Binding rejects anything but 3 letters before the service is reached.
	body, _ := json.Marshal(gin.H{"name": "Holidays", "currencyCode": "EURO"})
	w := suite.authedRequest(http.MethodPost, "/api/v1/wallets", body, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockWalletService.AssertNotCalled(suite.T(), "CreateWallet", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletHandlerTestSuite) TestCreateWallet_AcceptsLowercaseCurrency() {
	userID := uuid.NewString()
	now := time.Now().UTC()
	created := &domain.Wallet{
		WalletID:     uuid.NewString(),
		UserID:       userID,
		Name:         "Side cash",
		CurrencyCode: "ZZZ",
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	// Uppercasing happens in the service, so the raw code passes through.
	suite.mockWalletService.On("CreateWallet", mock.Anything, userID, dto.CreateWalletRequest{
		Name:         "Side cash",
		CurrencyCode: "zzz",
	}).Return(created, nil).Once()

	body, _ := json.Marshal(gin.H{"name": "Side cash", "currencyCode": "zzz"})
	w := suite.authedRequest(http.MethodPost, "/api/v1/wallets", body, userID)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockWalletService.AssertExpectations(suite.T())
}

func (suite *WalletHandlerTestSuite) TestTransfer_Success() {
	userID := uuid.NewString()
	fromID := uuid.NewString()
	toID := uuid.NewString()
	amount := decimal.NewFromInt(100)

	suite.mockWalletService.On("Transfer", mock.Anything, userID, fromID, toID,
		mock.MatchedBy(func(a decimal.Decimal) bool { return a.Equal(amount) }),
		(*decimal.Decimal)(nil),
	).Return(nil).Once()

	body, _ := json.Marshal(gin.H{"fromWalletID": fromID, "toWalletID": toID, "amount": "100"})
	w := suite.authedRequest(http.MethodPost, "/api/v1/wallets/transfer", body, userID)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockWalletService.AssertExpectations(suite.T())
}

func (suite *WalletHandlerTestSuite) TestTransfer_InsufficientBalanceConflict() {
	userID := uuid.NewString()
	fromID := uuid.NewString()
	toID := uuid.NewString()

	suite.mockWalletService.On("Transfer", mock.Anything, userID, fromID, toID, mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: insufficient balance", apperrors.ErrConflict)).Once()

	body, _ := json.Marshal(gin.H{"fromWalletID": fromID, "toWalletID": toID, "amount": "100"})
	w := suite.authedRequest(http.MethodPost, "/api/v1/wallets/transfer", body, userID)

	suite.Equal(http.StatusConflict, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.Error, "insufficient balance")
}

func (suite *WalletHandlerTestSuite) TestGetWallet_NotFound() {
	userID := uuid.NewString()
	walletID := uuid.NewString()

	suite.mockWalletService.On("GetWallet", mock.Anything, userID, walletID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/wallets/"+walletID, nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *WalletHandlerTestSuite) TestDeleteWallet_ConflictWithEntries() {
	userID := uuid.NewString()
	walletID := uuid.NewString()

	suite.mockWalletService.On("DeleteWallet", mock.Anything, userID, walletID).
		Return(fmt.Errorf("%w: cannot delete wallet with existing entries", apperrors.ErrConflict)).Once()

	w := suite.authedRequest(http.MethodDelete, "/api/v1/wallets/"+walletID, nil, userID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *WalletHandlerTestSuite) TestGetWalletBalance_Success() {
	userID := uuid.NewString()
	walletID := uuid.NewString()

	suite.mockLedgerService.On("WalletBalance", mock.Anything, userID, walletID).
		Return(decimal.RequireFromString("77.70"), nil).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/wallets/"+walletID+"/balance", nil, userID)

	suite.Equal(http.StatusOK, w.Code)

	var resp map[string]json.RawMessage
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(string(resp["balance"]), "77.7")
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func TestWalletHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(WalletHandlerTestSuite))
}
