package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrackr/fintrackr-backend/internal/apperrors"
	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr-backend/internal/core/ports/repositories"
	"github.com/fintrackr/fintrackr-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSavingsGoalRepository struct {
	db *pgxpool.Pool
}

func newPgxSavingsGoalRepository(db *pgxpool.Pool) portsrepo.SavingsGoalRepository {
	return &PgxSavingsGoalRepository{db: db}
}

// Ensure PgxSavingsGoalRepository implements portsrepo.SavingsGoalRepository
var _ portsrepo.SavingsGoalRepository = (*PgxSavingsGoalRepository)(nil)

func toModelSavingsGoal(d domain.SavingsGoal) models.SavingsGoal {
	return models.SavingsGoal{
		GoalID:       d.GoalID,
		UserID:       d.UserID,
		WalletID:     d.WalletID,
		Title:        d.Title,
		TargetAmount: d.TargetAmount,
		StartDate:    d.StartDate,
		TargetDate:   d.TargetDate,
		Timestamps: models.Timestamps{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

func toDomainSavingsGoal(m models.SavingsGoal) domain.SavingsGoal {
	return domain.SavingsGoal{
		GoalID:       m.GoalID,
		UserID:       m.UserID,
		WalletID:     m.WalletID,
		Title:        m.Title,
		TargetAmount: m.TargetAmount,
		StartDate:    m.StartDate,
		TargetDate:   m.TargetDate,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

const savingsGoalColumns = `goal_id, user_id, wallet_id, title, target_amount, start_date, target_date, created_at, updated_at`

func scanSavingsGoal(row pgx.Row) (models.SavingsGoal, error) {
	var m models.SavingsGoal
	err := row.Scan(
		&m.GoalID,
		&m.UserID,
		&m.WalletID,
		&m.Title,
		&m.TargetAmount,
		&m.StartDate,
		&m.TargetDate,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (r *PgxSavingsGoalRepository) SaveGoal(ctx context.Context, goal domain.SavingsGoal) error {
	query := `
		INSERT INTO savings_goals (goal_id, user_id, wallet_id, title, target_amount, start_date, target_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	m := toModelSavingsGoal(goal)
	_, err := r.db.Exec(ctx, query,
		m.GoalID, m.UserID, m.WalletID, m.Title, m.TargetAmount,
		m.StartDate, m.TargetDate, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save savings goal %s: %w", goal.GoalID, err)
	}
	return nil
}

func (r *PgxSavingsGoalRepository) FindGoalForUser(ctx context.Context, userID, goalID string) (*domain.SavingsGoal, error) {
	query := fmt.Sprintf(`SELECT %s FROM savings_goals WHERE goal_id = $1 AND user_id = $2;`, savingsGoalColumns)

	m, err := scanSavingsGoal(r.db.QueryRow(ctx, query, goalID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find savings goal by ID %s: %w", goalID, err)
	}

	d := toDomainSavingsGoal(m)
	return &d, nil
}

func (r *PgxSavingsGoalRepository) ListGoalsByUser(ctx context.Context, userID string, walletID *string) ([]domain.SavingsGoal, error) {
	query := fmt.Sprintf(`SELECT %s FROM savings_goals WHERE user_id = $1`, savingsGoalColumns)
	args := []any{userID}

	if walletID != nil {
		args = append(args, *walletID)
		query += fmt.Sprintf(" AND wallet_id = $%d", len(args))
	}
	query += " ORDER BY created_at DESC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query savings goals for user %s: %w", userID, err)
	}
	defer rows.Close()

	goals := []domain.SavingsGoal{}
	for rows.Next() {
		m, err := scanSavingsGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan savings goal row: %w", err)
		}
		goals = append(goals, toDomainSavingsGoal(m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating savings goal rows: %w", err)
	}
	return goals, nil
}

func (r *PgxSavingsGoalRepository) UpdateGoal(ctx context.Context, goal domain.SavingsGoal) error {
	query := `
		UPDATE savings_goals
		SET wallet_id = $1, title = $2, target_amount = $3, start_date = $4, target_date = $5, updated_at = $6
		WHERE goal_id = $7 AND user_id = $8;
	`
	m := toModelSavingsGoal(goal)
	tag, err := r.db.Exec(ctx, query,
		m.WalletID, m.Title, m.TargetAmount, m.StartDate, m.TargetDate, m.UpdatedAt,
		m.GoalID, m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update savings goal %s: %w", goal.GoalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSavingsGoalRepository) DeleteGoal(ctx context.Context, userID, goalID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM savings_goals WHERE goal_id = $1 AND user_id = $2;`, goalID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete savings goal %s: %w", goalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
