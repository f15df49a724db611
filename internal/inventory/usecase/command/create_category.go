package command

import (
	"fmt"
	"time"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

// CreateCategoryCommand represents the command to create a category
type CreateCategoryCommand struct {
	Name        string
	Description string
}

// CreateCategoryHandler handles category creation command
type CreateCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewCreateCategoryHandler creates a new create category handler
func NewCreateCategoryHandler(repo domain.CategoryRepository) *CreateCategoryHandler {
	return &CreateCategoryHandler{repo: repo}
}

// Handle executes the create category command
func (h *CreateCategoryHandler) Handle(cmd CreateCategoryCommand) (*domain.Category, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("category name is required: %w", domain.ErrInvalidInput)
	}

	// Category names are unique
	if existing, _ := h.repo.FindByName(cmd.Name); existing != nil {
		return nil, domain.ErrCategoryNameTaken
	}

	category := &domain.Category{
		Name:        cmd.Name,
		Description: cmd.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.repo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}
