package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fintrackr/fintrackr-backend/internal/apperrors"
	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/fintrackr-backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// savingsGoalService implements savings goal CRUD.
type savingsGoalService struct {
	goalRepo   portsrepo.SavingsGoalRepository
	walletRepo portsrepo.WalletReader
}

// NewSavingsGoalService creates a new savings goal service.
func NewSavingsGoalService(goalRepo portsrepo.SavingsGoalRepository, walletRepo portsrepo.WalletReader) portssvc.SavingsGoalSvc {
	return &savingsGoalService{
		goalRepo:   goalRepo,
		walletRepo: walletRepo,
	}
}

var _ portssvc.SavingsGoalSvc = (*savingsGoalService)(nil)

func (s *savingsGoalService) CreateGoal(ctx context.Context, userID string, req dto.CreateSavingsGoalRequest) (*dto.SavingsGoalResponse, error) {
	if _, err := s.walletRepo.FindWalletForUser(ctx, userID, req.WalletID); err != nil {
		return nil, fmt.Errorf("%w: wallet not found", apperrors.ErrValidation)
	}
	if req.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: target amount must be greater than 0", apperrors.ErrValidation)
	}
	if req.TargetDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: target date must not precede start date", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	goal := domain.SavingsGoal{
		GoalID:       uuid.NewString(),
		UserID:       userID,
		WalletID:     req.WalletID,
		Title:        strings.TrimSpace(req.Title),
		TargetAmount: req.TargetAmount.Round(2),
		StartDate:    req.StartDate,
		TargetDate:   req.TargetDate,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to save savings goal: %w", err)
	}

	resp := dto.ToSavingsGoalResponse(&goal)
	return &resp, nil
}

func (s *savingsGoalService) GetGoal(ctx context.Context, userID, goalID string) (*dto.SavingsGoalResponse, error) {
	goal, err := s.goalRepo.FindGoalForUser(ctx, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get savings goal: %w", err)
	}
	resp := dto.ToSavingsGoalResponse(goal)
	return &resp, nil
}

func (s *savingsGoalService) ListGoals(ctx context.Context, userID string, walletID *string) ([]dto.SavingsGoalResponse, error) {
	goals, err := s.goalRepo.ListGoalsByUser(ctx, userID, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to list savings goals: %w", err)
	}
	return dto.ToSavingsGoalResponses(goals), nil
}

func (s *savingsGoalService) UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateSavingsGoalRequest) (*dto.SavingsGoalResponse, error) {
	goal, err := s.goalRepo.FindGoalForUser(ctx, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get savings goal for update: %w", err)
	}

	if req.Title != nil {
		goal.Title = strings.TrimSpace(*req.Title)
	}
	if req.TargetAmount != nil {
		if req.TargetAmount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: target amount must be greater than 0", apperrors.ErrValidation)
		}
		goal.TargetAmount = req.TargetAmount.Round(2)
	}
	if req.StartDate != nil {
		goal.StartDate = *req.StartDate
	}
	if req.TargetDate != nil {
		goal.TargetDate = *req.TargetDate
	}
	if goal.TargetDate.Before(goal.StartDate) {
		return nil, fmt.Errorf("%w: target date must not precede start date", apperrors.ErrValidation)
	}
	goal.UpdatedAt = time.Now().UTC()

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		return nil, fmt.Errorf("failed to update savings goal: %w", err)
	}

	resp := dto.ToSavingsGoalResponse(goal)
	return &resp, nil
}

func (s *savingsGoalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if err := s.goalRepo.DeleteGoal(ctx, userID, goalID); err != nil {
		return fmt.Errorf("failed to delete savings goal: %w", err)
	}
	return nil
}
