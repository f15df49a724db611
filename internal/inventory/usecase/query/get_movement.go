package query

import (
	"fmt"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

// GetMovementQuery represents the query to get a stock movement
type GetMovementQuery struct {
	ID uint
}

// GetMovementHandler handles get movement query
type GetMovementHandler struct {
	repo domain.MovementRepository
}

// NewGetMovementHandler creates a new get movement handler
func NewGetMovementHandler(repo domain.MovementRepository) *GetMovementHandler {
	return &GetMovementHandler{repo: repo}
}

// Handle executes the get movement query
func (h *GetMovementHandler) Handle(q GetMovementQuery) (*domain.StockMovement, error) {
	if q.ID == 0 {
		return nil, fmt.Errorf("id is required: %w", domain.ErrInvalidInput)
	}
	return h.repo.FindByID(q.ID)
}
