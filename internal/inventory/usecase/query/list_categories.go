package query

import (
	"fmt"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

// ListCategoriesQuery represents the query to list categories
type ListCategoriesQuery struct {
	Limit  int
	Offset int
}

// ListCategoriesHandler handles list categories query
type ListCategoriesHandler struct {
	repo domain.CategoryRepository
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(repo domain.CategoryRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{repo: repo}
}

// Handle executes the list categories query
func (h *ListCategoriesHandler) Handle(q ListCategoriesQuery) ([]domain.Category, error) {
	if q.Limit == 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	categories, err := h.repo.FindAll(q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
