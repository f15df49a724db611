package query

import (
	"fmt"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

// ListMovementsQuery represents the query to list stock movements,
// optionally filtered by product
type ListMovementsQuery struct {
	Limit     int
	Offset    int
	ProductID uint
}

// ListMovementsHandler handles list movements query
type ListMovementsHandler struct {
	repo domain.MovementRepository
}

// NewListMovementsHandler creates a new list movements handler
func NewListMovementsHandler(repo domain.MovementRepository) *ListMovementsHandler {
	return &ListMovementsHandler{repo: repo}
}

// Handle executes the list movements query
func (h *ListMovementsHandler) Handle(q ListMovementsQuery) ([]domain.StockMovement, error) {
	if q.Limit == 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	var (
		movements []domain.StockMovement
		err       error
	)
	if q.ProductID != 0 {
		movements, err = h.repo.FindByProductID(q.ProductID, q.Limit, q.Offset)
	} else {
		movements, err = h.repo.FindAll(q.Limit, q.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, nil
}
