package repositories

import (
	"context"

	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a category by its identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all categories ordered by kind then name.
	ListCategories(ctx context.Context) ([]domain.Category, error)

	// HasAnyCategories reports whether the category table is non-empty.
	HasAnyCategories(ctx context.Context) (bool, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category; (name, kind) collisions surface
	// as apperrors.ErrDuplicate.
	SaveCategory(ctx context.Context, category domain.Category) error

	// GetOrCreateCategory resolves a category by its natural key, inserting
	// it when absent. The upsert is backed by the (name, kind) unique index
	// so concurrent callers converge on one row.
	GetOrCreateCategory(ctx context.Context, key domain.CategoryKey) (*domain.Category, error)
}

// CategoryRepository combines all category-related repository interfaces
type CategoryRepository interface {
	CategoryReader
	CategoryWriter
}
