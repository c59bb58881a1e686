package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrackr/fintrackr-backend/internal/apperrors"
	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr-backend/internal/core/ports/repositories"
	"github.com/fintrackr/fintrackr-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgxpool.Pool and pgx.Tx used by the shared
// category upsert, so it can run standalone or inside a posting transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgxCategoryRepository struct {
	db *pgxpool.Pool
}

func newPgxCategoryRepository(db *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{db: db}
}

// Ensure PgxCategoryRepository implements portsrepo.CategoryRepository
var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

func toDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID: m.CategoryID,
		Name:       m.Name,
		Kind:       domain.CategoryKind(m.Kind),
		CreatedAt:  m.CreatedAt,
	}
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT category_id, name, kind, created_at FROM categories WHERE category_id = $1;`

	var m models.Category
	err := r.db.QueryRow(ctx, query, categoryID).Scan(&m.CategoryID, &m.Name, &m.Kind, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}

	d := toDomainCategory(m)
	return &d, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT category_id, name, kind, created_at FROM categories ORDER BY kind, name;`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var m models.Category
		if err := rows.Scan(&m.CategoryID, &m.Name, &m.Kind, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, toDomainCategory(m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

func (r *PgxCategoryRepository) HasAnyCategories(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories);`).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for categories: %w", err)
	}
	return exists, nil
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `
		INSERT INTO categories (category_id, name, kind, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.db.Exec(ctx, query, category.CategoryID, category.Name, string(category.Kind), category.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: category %q (%s) already exists", apperrors.ErrDuplicate, category.Name, category.Kind)
		}
		return fmt.Errorf("failed to save category %s: %w", category.CategoryID, err)
	}
	return nil
}

func (r *PgxCategoryRepository) GetOrCreateCategory(ctx context.Context, key domain.CategoryKey) (*domain.Category, error) {
	return getOrCreateCategory(ctx, r.db, key)
}

// getOrCreateCategory resolves a category by its natural key, inserting it
// when absent. The insert rides on the (name, kind) unique index: concurrent
// callers hit ON CONFLICT DO NOTHING and converge on the surviving row.
func getOrCreateCategory(ctx context.Context, q querier, key domain.CategoryKey) (*domain.Category, error) {
	selectQuery := `SELECT category_id, name, kind, created_at FROM categories WHERE name = $1 AND kind = $2;`

	var m models.Category
	err := q.QueryRow(ctx, selectQuery, key.Name, string(key.Kind)).Scan(&m.CategoryID, &m.Name, &m.Kind, &m.CreatedAt)
	if err == nil {
		d := toDomainCategory(m)
		return &d, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up category %q: %w", key.Name, err)
	}

	insertQuery := `
		INSERT INTO categories (category_id, name, kind, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (name, kind) DO NOTHING;
	`
	if _, err := q.Exec(ctx, insertQuery, uuid.NewString(), key.Name, string(key.Kind)); err != nil {
		return nil, fmt.Errorf("failed to insert category %q: %w", key.Name, err)
	}

	// Re-read to pick up whichever row survived the conflict.
	err = q.QueryRow(ctx, selectQuery, key.Name, string(key.Kind)).Scan(&m.CategoryID, &m.Name, &m.Kind, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read category %q after upsert: %w", key.Name, err)
	}

	d := toDomainCategory(m)
	return &d, nil
}
