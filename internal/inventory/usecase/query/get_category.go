package query

import (
	"fmt"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

// GetCategoryQuery represents the query to get a category
type GetCategoryQuery struct {
	ID uint
}

// GetCategoryHandler handles get category query
type GetCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewGetCategoryHandler creates a new get category handler
func NewGetCategoryHandler(repo domain.CategoryRepository) *GetCategoryHandler {
	return &GetCategoryHandler{repo: repo}
}

// Handle executes the get category query
func (h *GetCategoryHandler) Handle(q GetCategoryQuery) (*domain.Category, error) {
	if q.ID == 0 {
		return nil, fmt.Errorf("id is required: %w", domain.ErrInvalidInput)
	}
	return h.repo.FindByID(q.ID)
}
