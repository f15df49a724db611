package domain

import (
	"time"

	"gorm.io/gorm"
)

// Category groups products
type Category struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"uniqueIndex;not null"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

// CategoryRepository defines the contract for category data access
type CategoryRepository interface {
	Create(category *Category) error
	FindByID(id uint) (*Category, error)
	FindByName(name string) (*Category, error)
	FindAll(limit, offset int) ([]Category, error)
	Update(category *Category) error
	// Delete removes the category together with its products and their
	// movements as one atomic unit.
	Delete(id uint) error
	Count() (int64, error)
}
