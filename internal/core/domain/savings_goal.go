package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal tracks progress toward a target amount in one of the owner's
// wallets between a start and a target date.
type SavingsGoal struct {
	GoalID       string          `json:"goalID"` // Primary Key (UUID)
	UserID       string          `json:"userID"`
	WalletID     string          `json:"walletID"`
	Title        string          `json:"title"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	StartDate    time.Time       `json:"startDate"`
	TargetDate   time.Time       `json:"targetDate"`
	Timestamps
}
