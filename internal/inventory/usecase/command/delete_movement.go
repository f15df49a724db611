package command

import (
	"context"
	"fmt"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

// DeleteMovementCommand represents the command to delete a movement
type DeleteMovementCommand struct {
	ID uint
}

// DeleteMovementHandler reverses the movement's effect on its product and
// removes the record as one atomic unit
type DeleteMovementHandler struct {
	ledger domain.Ledger
}

// NewDeleteMovementHandler creates a new delete movement handler
func NewDeleteMovementHandler(ledger domain.Ledger) *DeleteMovementHandler {
	return &DeleteMovementHandler{ledger: ledger}
}

// Handle executes the delete movement command. Deleting an IN movement whose
// quantity has already been consumed by later OUT movements would drive the
// cached quantity negative; that delete fails with ErrInsufficientStock and
// the movement stays.
func (h *DeleteMovementHandler) Handle(ctx context.Context, cmd DeleteMovementCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("movement id is required: %w", domain.ErrInvalidInput)
	}

	return h.ledger.Reconcile(ctx, func(tx domain.LedgerTx) error {
		movement, err := tx.MovementByID(cmd.ID)
		if err != nil {
			return err
		}

		product, err := tx.ProductForUpdate(movement.ProductID)
		if err != nil {
			return err
		}

		if err := product.ApplyDelta(movement.Reversal()); err != nil {
			return err
		}
		if err := tx.SaveProduct(product); err != nil {
			return fmt.Errorf("failed to save product: %w", err)
		}
		if err := tx.DeleteMovement(movement.ID); err != nil {
			return fmt.Errorf("failed to delete movement: %w", err)
		}
		return nil
	})
}
