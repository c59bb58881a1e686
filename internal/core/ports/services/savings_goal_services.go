package services

import (
	"context"

	"github.com/fintrackr/fintrackr-backend/internal/dto"
)

// SavingsGoalSvc manages savings goals attached to wallets.
type SavingsGoalSvc interface {
	CreateGoal(ctx context.Context, userID string, req dto.CreateSavingsGoalRequest) (*dto.SavingsGoalResponse, error)
	GetGoal(ctx context.Context, userID, goalID string) (*dto.SavingsGoalResponse, error)
	ListGoals(ctx context.Context, userID string, walletID *string) ([]dto.SavingsGoalResponse, error)
	UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateSavingsGoalRequest) (*dto.SavingsGoalResponse, error)
	DeleteGoal(ctx context.Context, userID, goalID string) error
}
