package dto

import (
	"time"

	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSavingsGoalRequest defines the data needed to create a savings goal.
type CreateSavingsGoalRequest struct {
	WalletID     string          `json:"walletID" binding:"required"`
	Title        string          `json:"title"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required,positivedecimal"`
	StartDate    time.Time       `json:"startDate" binding:"required"`
	TargetDate   time.Time       `json:"targetDate" binding:"required"`
}

// UpdateSavingsGoalRequest defines the fields patchable on a goal.
type UpdateSavingsGoalRequest struct {
	Title        *string          `json:"title"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
	StartDate    *time.Time       `json:"startDate"`
	TargetDate   *time.Time       `json:"targetDate"`
}

// SavingsGoalResponse defines the data returned for a savings goal.
type SavingsGoalResponse struct {
	GoalID       string          `json:"goalID"`
	WalletID     string          `json:"walletID"`
	Title        string          `json:"title,omitempty"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	StartDate    time.Time       `json:"startDate"`
	TargetDate   time.Time       `json:"targetDate"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToSavingsGoalResponse converts a domain.SavingsGoal to its DTO.
func ToSavingsGoalResponse(g *domain.SavingsGoal) SavingsGoalResponse {
	return SavingsGoalResponse{
		GoalID:       g.GoalID,
		WalletID:     g.WalletID,
		Title:        g.Title,
		TargetAmount: g.TargetAmount,
		StartDate:    g.StartDate,
		TargetDate:   g.TargetDate,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

// ToSavingsGoalResponses converts a slice of goals.
func ToSavingsGoalResponses(gs []domain.SavingsGoal) []SavingsGoalResponse {
	out := make([]SavingsGoalResponse, len(gs))
	for i := range gs {
		out[i] = ToSavingsGoalResponse(&gs[i])
	}
	return out
}
