package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fintrackr/fintrackr-backend/internal/apperrors"
	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/fintrackr-backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr-backend/internal/dto"
	"github.com/fintrackr/fintrackr-backend/internal/middleware"
)

// defaultCategories is the stock set seeded into an empty database.
var defaultCategories = []domain.CategoryKey{
	{Name: "Food", Kind: domain.Expense},
	{Name: "Rent", Kind: domain.Expense},
	{Name: "Transportation", Kind: domain.Expense},
	{Name: "Utilities", Kind: domain.Expense},
	{Name: "Entertainment", Kind: domain.Expense},
	{Name: "Healthcare", Kind: domain.Expense},
	{Name: "Shopping", Kind: domain.Expense},
	{Name: "Insurance", Kind: domain.Expense},
	{Name: "Education", Kind: domain.Expense},
	{Name: "Other Expenses", Kind: domain.Expense},
	{Name: "Salary", Kind: domain.Income},
	{Name: "Freelance", Kind: domain.Income},
	{Name: "Investment", Kind: domain.Income},
	{Name: "Gift", Kind: domain.Income},
	{Name: "Other Income", Kind: domain.Income},
}

// categoryService implements category reads, creation and seeding.
type categoryService struct {
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepository) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) GetCategory(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, kind *domain.CategoryKind) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if kind == nil {
		return categories, nil
	}

	filtered := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		if c.Kind == *kind {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// CreateCategory adds a new global category.
func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}
	if req.Kind != domain.Expense && req.Kind != domain.Income {
		return nil, fmt.Errorf("%w: category kind must be EXPENSE or INCOME", apperrors.ErrValidation)
	}

	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       name,
		Kind:       req.Kind,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &category, nil
}

// EnsureDefaults seeds the stock category set when the table is empty.
// Invoked once at startup.
func (s *categoryService) EnsureDefaults(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	hasAny, err := s.categoryRepo.HasAnyCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing categories: %w", err)
	}
	if hasAny {
		return nil
	}

	for _, key := range defaultCategories {
		if _, err := s.categoryRepo.GetOrCreateCategory(ctx, key); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", key.Name, err)
		}
	}

	logger.Info("Seeded default categories", slog.Int("count", len(defaultCategories)))
	return nil
}

// ResolveCategory returns the category for the key, creating it on first use.
func (s *categoryService) ResolveCategory(ctx context.Context, key domain.CategoryKey) (*domain.Category, error) {
	category, err := s.categoryRepo.GetOrCreateCategory(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category %q: %w", key.Name, err)
	}
	return category, nil
}
