package command

import (
	"context"
	"fmt"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

// UpdateMovementCommand represents the command to modify an existing
// movement. ProductID may point at a different product than the original,
// which moves the recorded stock between the two. A zero ProductID keeps
// the movement on its current product. The timestamp is immutable.
type UpdateMovementCommand struct {
	ID           uint
	ProductID    uint
	MovementType string
	Quantity     int
	Reason       string
}

// UpdateMovementHandler reverses the movement's old effect and applies the
// new one as one atomic unit
type UpdateMovementHandler struct {
	ledger domain.Ledger
}

// NewUpdateMovementHandler creates a new update movement handler
func NewUpdateMovementHandler(ledger domain.Ledger) *UpdateMovementHandler {
	return &UpdateMovementHandler{ledger: ledger}
}

// Handle executes the update movement command. The net effect per product is
// guarded: an update that would leave any involved product's cached quantity
// below zero fails with ErrInsufficientStock and commits nothing.
func (h *UpdateMovementHandler) Handle(ctx context.Context, cmd UpdateMovementCommand) (*domain.StockMovement, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("movement id is required: %w", domain.ErrInvalidInput)
	}
	if cmd.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if !domain.ValidMovementType(cmd.MovementType) {
		return nil, domain.ErrInvalidMovementType
	}

	var updated *domain.StockMovement
	err := h.ledger.Reconcile(ctx, func(tx domain.LedgerTx) error {
		movement, err := tx.MovementByID(cmd.ID)
		if err != nil {
			return err
		}

		oldProductID := movement.ProductID
		newProductID := cmd.ProductID
		if newProductID == 0 {
			newProductID = oldProductID
		}

		reversal := movement.Reversal()

		movement.ProductID = newProductID
		movement.MovementType = cmd.MovementType
		movement.Quantity = cmd.Quantity
		movement.Reason = cmd.Reason
		forward := movement.Delta()

		if oldProductID == newProductID {
			product, err := tx.ProductForUpdate(oldProductID)
			if err != nil {
				return err
			}
			// Reversal and forward effect collapse to one net delta, so a
			// transient dip below zero mid-update cannot reject a valid
			// final state.
			if err := product.ApplyDelta(reversal + forward); err != nil {
				return err
			}
			if err := tx.SaveProduct(product); err != nil {
				return fmt.Errorf("failed to save product: %w", err)
			}
		} else {
			oldProduct, newProduct, err := lockPair(tx, oldProductID, newProductID)
			if err != nil {
				return err
			}
			if err := oldProduct.ApplyDelta(reversal); err != nil {
				return err
			}
			if err := newProduct.ApplyDelta(forward); err != nil {
				return err
			}
			if err := tx.SaveProduct(oldProduct); err != nil {
				return fmt.Errorf("failed to save product: %w", err)
			}
			if err := tx.SaveProduct(newProduct); err != nil {
				return fmt.Errorf("failed to save product: %w", err)
			}
		}

		if err := tx.SaveMovement(movement); err != nil {
			return fmt.Errorf("failed to save movement: %w", err)
		}

		updated = movement
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// lockPair locks two distinct products in ascending ID order so concurrent
// cross-product updates cannot deadlock.
func lockPair(tx domain.LedgerTx, oldID, newID uint) (oldProduct, newProduct *domain.Product, err error) {
	firstID, secondID := oldID, newID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := tx.ProductForUpdate(firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := tx.ProductForUpdate(secondID)
	if err != nil {
		return nil, nil, err
	}

	if first.ID == oldID {
		return first, second, nil
	}
	return second, first, nil
}
