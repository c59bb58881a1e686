package dto

import "github.com/fintrackr/fintrackr-backend/internal/core/domain"

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name string              `json:"name" binding:"required"`
	Kind domain.CategoryKind `json:"kind" binding:"required,oneof=EXPENSE INCOME"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string              `json:"categoryID"`
	Name       string              `json:"name"`
	Kind       domain.CategoryKind `json:"kind"`
}

// ToCategoryResponses converts a slice of domain categories.
func ToCategoryResponses(cs []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(cs))
	for i, c := range cs {
		out[i] = CategoryResponse{CategoryID: c.CategoryID, Name: c.Name, Kind: c.Kind}
	}
	return out
}
