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
	portsrepo "github.com/fintrackr/fintrackr-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/fintrackr-backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr-backend/internal/core/services"
	"github.com/fintrackr/fintrackr-backend/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo   *MockLedgerRepository
	mockWalletRepo   *MockWalletRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockWalletRepo, suite.mockCategoryRepo)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	walletID := uuid.NewString()
	categoryID := uuid.NewString()
	entryDate := time.Now().UTC().Truncate(time.Hour)

	suite.mockWalletRepo.On("FindWalletForUser", ctx, userID, walletID).Return(&domain.Wallet{WalletID: walletID, UserID: userID}, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(&domain.Category{CategoryID: categoryID}, nil).Once()

	var saved domain.LedgerEntry
	suite.mockLedgerRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.LedgerEntry)
		}).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, userID, dto.CreateEntryRequest{
		WalletID:   walletID,
		Amount:     decimal.RequireFromString("25.999"),
		Direction:  domain.Debit,
		CategoryID: categoryID,
		Date:       entryDate,
		Note:       "coffee",
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.True(saved.Amount.Equal(decimal.RequireFromString("26.00"))) // rounded to 2dp
	suite.Equal(domain.Debit, saved.Direction)
	suite.Equal(entryDate, saved.Date)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_UnknownCategory() {
	ctx := context.Background()
	userID := uuid.NewString()
	walletID := uuid.NewString()
	categoryID := uuid.NewString()

	suite.mockWalletRepo.On("FindWalletForUser", ctx, userID, walletID).Return(&domain.Wallet{WalletID: walletID}, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, categoryID).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.CreateEntry(ctx, userID, dto.CreateEntryRequest{
		WalletID:   walletID,
		Amount:     decimal.NewFromInt(10),
		Direction:  domain.Credit,
		CategoryID: categoryID,
		Date:       time.Now().UTC(),
	})

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateEntry_NonPositiveAmount() {
	ctx := context.Background()

	entry, err := suite.service.CreateEntry(ctx, uuid.NewString(), dto.CreateEntryRequest{
		WalletID:   uuid.NewString(),
		Amount:     decimal.NewFromInt(-5),
		Direction:  domain.Debit,
		CategoryID: uuid.NewString(),
		Date:       time.Now().UTC(),
	})

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestListEntries_PassesFilterThrough() {
	ctx := context.Background()
	userID := uuid.NewString()
	walletID := uuid.NewString()
	direction := domain.Debit

	expected := portsrepo.EntryFilter{WalletID: &walletID, Direction: &direction}
	suite.mockLedgerRepo.On("ListEntriesByUser", ctx, userID, expected).Return([]domain.LedgerEntry{}, nil).Once()

	entries, err := suite.service.ListEntries(ctx, userID, dto.ListEntriesParams{
		WalletID:  &walletID,
		Direction: &direction,
	})

	suite.Require().NoError(err)
	suite.Empty(entries)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestWalletBalance_ChecksOwnership() {
	ctx := context.Background()
	userID := uuid.NewString()
	walletID := uuid.NewString()

	suite.mockWalletRepo.On("FindWalletForUser", ctx, userID, walletID).Return(nil, apperrors.ErrNotFound).Once()

	balance, err := suite.service.WalletBalance(ctx, userID, walletID)

	suite.Require().Error(err)
	suite.True(balance.IsZero())
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SumWalletBalance", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestUpdateEntry_PatchesProvidedFields() {
	ctx := context.Background()
	userID := uuid.NewString()
	now := time.Now().UTC()
	existing := &domain.LedgerEntry{
		EntryID:    uuid.NewString(),
		UserID:     userID,
		WalletID:   uuid.NewString(),
		Amount:     decimal.NewFromInt(10),
		Direction:  domain.Debit,
		CategoryID: uuid.NewString(),
		Date:       now,
		Note:       "old note",
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	newAmount := decimal.RequireFromString("12.345")
	newNote := "new note"

	suite.mockLedgerRepo.On("FindEntryForUser", ctx, userID, existing.EntryID).Return(existing, nil).Once()

	var updated domain.LedgerEntry
	suite.mockLedgerRepo.On("UpdateEntry", ctx, mock.AnythingOfType("domain.LedgerEntry")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.LedgerEntry)
		}).Return(nil).Once()

	entry, err := suite.service.UpdateEntry(ctx, userID, existing.EntryID, dto.UpdateEntryRequest{
		Amount: &newAmount,
		Note:   &newNote,
	})

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(decimal.RequireFromString("12.35")))
	suite.Equal("new note", updated.Note)
	suite.Equal(domain.Debit, updated.Direction) // untouched
	suite.Equal(entry.EntryID, existing.EntryID)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "FindCategoryByID", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestDeleteEntry_PropagatesNotFound() {
	ctx := context.Background()
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockLedgerRepo.On("DeleteEntry", ctx, userID, entryID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteEntry(ctx, userID, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
