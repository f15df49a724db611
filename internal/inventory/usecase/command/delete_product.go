package command

import (
	"fmt"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID uint
}

// DeleteProductHandler handles product deletion command. Deletion removes
// the product's movements with it.
type DeleteProductHandler struct {
	products domain.ProductRepository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(products domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{products: products}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("invalid product id: %w", domain.ErrInvalidInput)
	}

	if _, err := h.products.FindByID(cmd.ID); err != nil {
		return err
	}

	if err := h.products.Delete(cmd.ID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
