package query

import (
	"fmt"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

// GetStatsQuery represents the query to get inventory statistics
type GetStatsQuery struct{}

// InventoryStats holds aggregate counters for the inventory
type InventoryStats struct {
	TotalCategories int64 `json:"total_categories"`
	TotalProducts   int64 `json:"total_products"`
	TotalMovements  int64 `json:"total_movements"`
	UnitsOnHand     int64 `json:"units_on_hand"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	categories domain.CategoryRepository
	products   domain.ProductRepository
	movements  domain.MovementRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(
	categories domain.CategoryRepository,
	products domain.ProductRepository,
	movements domain.MovementRepository,
) *GetStatsHandler {
	return &GetStatsHandler{categories: categories, products: products, movements: movements}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(q GetStatsQuery) (*InventoryStats, error) {
	categories, err := h.categories.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	products, err := h.products.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	movements, err := h.movements.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count movements: %w", err)
	}
	units, err := h.products.TotalStock()
	if err != nil {
		return nil, fmt.Errorf("failed to sum stock: %w", err)
	}

	return &InventoryStats{
		TotalCategories: categories,
		TotalProducts:   products,
		TotalMovements:  movements,
		UnitsOnHand:     units,
	}, nil
}
