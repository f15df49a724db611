package domain

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a tracked product. StockQuantity is a cached view of
// the movement ledger: at all times it equals the sum of IN quantities minus
// the sum of OUT quantities over the product's current movements.
type Product struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Name          string         `json:"name" gorm:"not null"`
	Description   string         `json:"description"`
	Price         float64        `json:"price" gorm:"not null"`
	CategoryID    uint           `json:"category_id" gorm:"not null;index"`
	StockQuantity int            `json:"stock_quantity" gorm:"not null;default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// IsAvailable checks if the product has stock on hand
func (p *Product) IsAvailable() bool {
	return p.StockQuantity > 0
}

// ApplyDelta adjusts the cached stock quantity. It is the only path that
// mutates StockQuantity during reconciliation; a delta that would drive the
// quantity below zero fails with ErrInsufficientStock and leaves the product
// unchanged.
func (p *Product) ApplyDelta(delta int) error {
	next := p.StockQuantity + delta
	if next < 0 {
		return ErrInsufficientStock
	}
	p.StockQuantity = next
	return nil
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindAll(limit, offset int) ([]Product, error)
	FindByCategory(categoryID uint, limit, offset int) ([]Product, error)
	Update(product *Product) error
	Delete(id uint) error
	Count() (int64, error)
	// TotalStock returns the sum of cached stock quantities across products.
	TotalStock() (int64, error)
}
