package repositories

import (
	"context"

	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
)

// SavingsGoalRepository defines persistence operations for savings goals.
type SavingsGoalRepository interface {
	SaveGoal(ctx context.Context, goal domain.SavingsGoal) error
	FindGoalForUser(ctx context.Context, userID, goalID string) (*domain.SavingsGoal, error)
	// ListGoalsByUser retrieves a user's goals newest-first, optionally
	// narrowed to one wallet.
	ListGoalsByUser(ctx context.Context, userID string, walletID *string) ([]domain.SavingsGoal, error)
	UpdateGoal(ctx context.Context, goal domain.SavingsGoal) error
	DeleteGoal(ctx context.Context, userID, goalID string) error
}
