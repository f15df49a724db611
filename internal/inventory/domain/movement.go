package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Movement types
const (
	MovementIn  = "IN"
	MovementOut = "OUT"
)

// ValidMovementType reports whether t is one of the known movement types
func ValidMovementType(t string) bool {
	return t == MovementIn || t == MovementOut
}

// StockMovement records a single IN or OUT change to a product's stock.
// Timestamp is server-assigned at creation and never modified afterwards.
type StockMovement struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	ProductID    uint           `json:"product_id" gorm:"not null;index"`
	MovementType string         `json:"movement_type" gorm:"type:varchar(3);not null"`
	Quantity     int            `json:"quantity" gorm:"not null"`
	Reason       string         `json:"reason"`
	Timestamp    time.Time      `json:"timestamp" gorm:"not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (StockMovement) TableName() string {
	return "stock_movements"
}

// Delta is the movement's effect on the product's cached stock quantity:
// positive for IN, negative for OUT.
func (m *StockMovement) Delta() int {
	if m.MovementType == MovementOut {
		return -m.Quantity
	}
	return m.Quantity
}

// Reversal is the adjustment that undoes the movement's effect.
func (m *StockMovement) Reversal() int {
	return -m.Delta()
}

// MovementRepository defines the contract for read access to the movement ledger
type MovementRepository interface {
	FindByID(id uint) (*StockMovement, error)
	FindAll(limit, offset int) ([]StockMovement, error)
	FindByProductID(productID uint, limit, offset int) ([]StockMovement, error)
	Count() (int64, error)
}

// Ledger runs a reconciliation as one atomic unit: the paired product and
// movement writes inside fn either all commit or none do.
type Ledger interface {
	Reconcile(ctx context.Context, fn func(tx LedgerTx) error) error
}

// LedgerTx is the set of operations available inside a reconciliation.
// ProductForUpdate takes a row-level lock so concurrent reconciliations
// against the same product serialize their read-modify-write.
type LedgerTx interface {
	ProductForUpdate(id uint) (*Product, error)
	SaveProduct(product *Product) error
	MovementByID(id uint) (*StockMovement, error)
	SaveMovement(movement *StockMovement) error
	DeleteMovement(id uint) error
}
