package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal is the database representation of a savings goal.
type SavingsGoal struct {
	GoalID       string          `db:"goal_id"`
	UserID       string          `db:"user_id"`
	WalletID     string          `db:"wallet_id"`
	Title        string          `db:"title"`
	TargetAmount decimal.Decimal `db:"target_amount"`
	StartDate    time.Time       `db:"start_date"`
	TargetDate   time.Time       `db:"target_date"`
	Timestamps
}
