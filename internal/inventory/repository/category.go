package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Category{})
}

func (r *GormCategoryRepository) Create(category *domain.Category) error {
	return r.db.Create(category).Error
}

func (r *GormCategoryRepository) FindByID(id uint) (*domain.Category, error) {
	var category domain.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindByName(name string) (*domain.Category, error) {
	var category domain.Category
	err := r.db.Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindAll(limit, offset int) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.Limit(limit).Offset(offset).Find(&categories).Error
	return categories, err
}

func (r *GormCategoryRepository) Update(category *domain.Category) error {
	return r.db.Save(category).Error
}

// categoryCascadeTx is the statement sequence a category delete runs inside
// one transaction. Soft deletes make the database-level FK cascade a no-op,
// so the cascade is explicit.
type categoryCascadeTx interface {
	ProductIDsByCategory(categoryID uint) ([]uint, error)
	DeleteMovementsOfProducts(productIDs []uint) error
	DeleteProductsOfCategory(categoryID uint) error
	DeleteCategory(categoryID uint) error
}

// cascadeDeleteCategory removes the category's product movements, then its
// products, then the category itself.
func cascadeDeleteCategory(tx categoryCascadeTx, id uint) error {
	productIDs, err := tx.ProductIDsByCategory(id)
	if err != nil {
		return err
	}

	if len(productIDs) > 0 {
		if err := tx.DeleteMovementsOfProducts(productIDs); err != nil {
			return err
		}
		if err := tx.DeleteProductsOfCategory(id); err != nil {
			return err
		}
	}

	return tx.DeleteCategory(id)
}

// Delete removes the category, its products, and their movements in one
// transaction.
func (r *GormCategoryRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return cascadeDeleteCategory(&gormCascadeTx{tx: tx}, id)
	})
}

type gormCascadeTx struct {
	tx *gorm.DB
}

func (t *gormCascadeTx) ProductIDsByCategory(categoryID uint) ([]uint, error) {
	var productIDs []uint
	err := t.tx.Model(&domain.Product{}).
		Where("category_id = ?", categoryID).
		Pluck("id", &productIDs).Error
	return productIDs, err
}

func (t *gormCascadeTx) DeleteMovementsOfProducts(productIDs []uint) error {
	return t.tx.Where("product_id IN ?", productIDs).
		Delete(&domain.StockMovement{}).Error
}

func (t *gormCascadeTx) DeleteProductsOfCategory(categoryID uint) error {
	return t.tx.Where("category_id = ?", categoryID).
		Delete(&domain.Product{}).Error
}

func (t *gormCascadeTx) DeleteCategory(categoryID uint) error {
	return t.tx.Delete(&domain.Category{}, categoryID).Error
}

func (r *GormCategoryRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Category{}).Count(&count).Error
	return count, err
}
