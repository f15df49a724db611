package command

import (
	"fmt"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

// DeleteCategoryCommand represents the command to delete a category
type DeleteCategoryCommand struct {
	ID uint
}

// DeleteCategoryHandler handles category deletion command. Deletion cascades
// to the category's products and their movements.
type DeleteCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewDeleteCategoryHandler creates a new delete category handler
func NewDeleteCategoryHandler(repo domain.CategoryRepository) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{repo: repo}
}

// Handle executes the delete category command
func (h *DeleteCategoryHandler) Handle(cmd DeleteCategoryCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("invalid category id: %w", domain.ErrInvalidInput)
	}

	if _, err := h.repo.FindByID(cmd.ID); err != nil {
		return err
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
