package command

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

// CreateMovementCommand represents the command to record a stock movement
type CreateMovementCommand struct {
	ProductID    uint
	MovementType string
	Quantity     int
	Reason       string
}

// CreateMovementHandler applies a new movement to the ledger and the
// product's cached quantity as one atomic unit
type CreateMovementHandler struct {
	ledger domain.Ledger
}

// NewCreateMovementHandler creates a new create movement handler
func NewCreateMovementHandler(ledger domain.Ledger) *CreateMovementHandler {
	return &CreateMovementHandler{ledger: ledger}
}

// Handle executes the create movement command. An OUT movement larger than
// the product's stock on hand fails with ErrInsufficientStock and commits
// nothing.
func (h *CreateMovementHandler) Handle(ctx context.Context, cmd CreateMovementCommand) (*domain.StockMovement, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required: %w", domain.ErrInvalidInput)
	}
	if cmd.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if !domain.ValidMovementType(cmd.MovementType) {
		return nil, domain.ErrInvalidMovementType
	}

	var movement *domain.StockMovement
	err := h.ledger.Reconcile(ctx, func(tx domain.LedgerTx) error {
		product, err := tx.ProductForUpdate(cmd.ProductID)
		if err != nil {
			return err
		}

		m := &domain.StockMovement{
			ProductID:    cmd.ProductID,
			MovementType: cmd.MovementType,
			Quantity:     cmd.Quantity,
			Reason:       cmd.Reason,
			Timestamp:    time.Now().UTC(),
		}

		if err := product.ApplyDelta(m.Delta()); err != nil {
			return err
		}
		if err := tx.SaveProduct(product); err != nil {
			return fmt.Errorf("failed to save product: %w", err)
		}
		if err := tx.SaveMovement(m); err != nil {
			return fmt.Errorf("failed to save movement: %w", err)
		}

		movement = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	return movement, nil
}
