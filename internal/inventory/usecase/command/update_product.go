package command

import (
	"fmt"
	"time"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

// UpdateProductCommand represents the command to update a product. Zero
// values leave the corresponding field unchanged; StockQuantity is a pointer
// so an explicit zero can be distinguished from "not provided".
type UpdateProductCommand struct {
	ID            uint
	Name          string
	Description   string
	Price         float64
	CategoryID    uint
	StockQuantity *int
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(products domain.ProductRepository, categories domain.CategoryRepository) *UpdateProductHandler {
	return &UpdateProductHandler{products: products, categories: categories}
}

// Handle executes the update product command. Setting StockQuantity here
// bypasses the movement ledger; the movement endpoints are the consistent
// path for stock changes.
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("invalid product id: %w", domain.ErrInvalidInput)
	}

	product, err := h.products.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != "" {
		product.Name = cmd.Name
	}
	if cmd.Description != "" {
		product.Description = cmd.Description
	}
	if cmd.Price != 0 {
		if cmd.Price < 0 {
			return nil, domain.ErrInvalidPrice
		}
		product.Price = cmd.Price
	}
	if cmd.CategoryID != 0 && cmd.CategoryID != product.CategoryID {
		if _, err := h.categories.FindByID(cmd.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = cmd.CategoryID
	}
	if cmd.StockQuantity != nil {
		if *cmd.StockQuantity < 0 {
			return nil, fmt.Errorf("stock quantity cannot be negative: %w", domain.ErrInvalidInput)
		}
		product.StockQuantity = *cmd.StockQuantity
	}

	product.UpdatedAt = time.Now()

	if err := h.products.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}
