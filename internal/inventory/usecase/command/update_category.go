package command

import (
	"fmt"
	"time"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

// UpdateCategoryCommand represents the command to update a category
type UpdateCategoryCommand struct {
	ID          uint
	Name        string
	Description string
}

// UpdateCategoryHandler handles category update command
type UpdateCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewUpdateCategoryHandler creates a new update category handler
func NewUpdateCategoryHandler(repo domain.CategoryRepository) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{repo: repo}
}

// Handle executes the update category command
func (h *UpdateCategoryHandler) Handle(cmd UpdateCategoryCommand) (*domain.Category, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("invalid category id: %w", domain.ErrInvalidInput)
	}

	category, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != "" && cmd.Name != category.Name {
		// Check the new name is not taken by another category
		if existing, _ := h.repo.FindByName(cmd.Name); existing != nil && existing.ID != cmd.ID {
			return nil, domain.ErrCategoryNameTaken
		}
		category.Name = cmd.Name
	}

	if cmd.Description != "" {
		category.Description = cmd.Description
	}

	category.UpdatedAt = time.Now()

	if err := h.repo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}
