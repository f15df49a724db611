package command

import (
	"fmt"
	"time"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	Name          string
	Description   string
	Price         float64
	CategoryID    uint
	StockQuantity int
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(products domain.ProductRepository, categories domain.CategoryRepository) *CreateProductHandler {
	return &CreateProductHandler{products: products, categories: categories}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required: %w", domain.ErrInvalidInput)
	}
	if cmd.Price <= 0 {
		return nil, domain.ErrInvalidPrice
	}
	if cmd.StockQuantity < 0 {
		return nil, fmt.Errorf("stock quantity cannot be negative: %w", domain.ErrInvalidInput)
	}

	// Category must exist
	if _, err := h.categories.FindByID(cmd.CategoryID); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:          cmd.Name,
		Description:   cmd.Description,
		Price:         cmd.Price,
		CategoryID:    cmd.CategoryID,
		StockQuantity: cmd.StockQuantity,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := h.products.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
