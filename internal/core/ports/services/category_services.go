package services

import (
	"context"

	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	"github.com/fintrackr/fintrackr-backend/internal/dto"
)

// CategoryReaderSvc defines read operations for categories
type CategoryReaderSvc interface {
	GetCategory(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, kind *domain.CategoryKind) ([]domain.Category, error)
}

// CategoryWriterSvc defines write operations for categories
type CategoryWriterSvc interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)

	// EnsureDefaults seeds the stock category set when the table is empty.
	EnsureDefaults(ctx context.Context) error

	// ResolveCategory returns the category for the key, creating it on first use.
	ResolveCategory(ctx context.Context, key domain.CategoryKey) (*domain.Category, error)
}

// CategorySvcFacade combines reader and writer category service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
