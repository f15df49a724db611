package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

type GormMovementRepository struct {
	db *gorm.DB
}

func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

func (r *GormMovementRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.StockMovement{})
}

func (r *GormMovementRepository) FindByID(id uint) (*domain.StockMovement, error) {
	var movement domain.StockMovement
	err := r.db.First(&movement, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMovementNotFound
		}
		return nil, err
	}
	return &movement, nil
}

func (r *GormMovementRepository) FindAll(limit, offset int) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	err := r.db.Order("id").Limit(limit).Offset(offset).Find(&movements).Error
	return movements, err
}

func (r *GormMovementRepository) FindByProductID(productID uint, limit, offset int) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	err := r.db.Where("product_id = ?", productID).
		Order("id").Limit(limit).Offset(offset).Find(&movements).Error
	return movements, err
}

func (r *GormMovementRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.StockMovement{}).Count(&count).Error
	return count, err
}

// GormLedger runs reconciliations as database transactions. Every product
// read inside a reconciliation takes a SELECT ... FOR UPDATE lock, so two
// movements against the same product cannot interleave their
// read-modify-write of the cached quantity.
type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

func (l *GormLedger) Reconcile(ctx context.Context, fn func(tx domain.LedgerTx) error) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormLedgerTx{tx: tx})
	})
}

type gormLedgerTx struct {
	tx *gorm.DB
}

func (t *gormLedgerTx) ProductForUpdate(id uint) (*domain.Product, error) {
	var product domain.Product
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (t *gormLedgerTx) SaveProduct(product *domain.Product) error {
	return t.tx.Save(product).Error
}

func (t *gormLedgerTx) MovementByID(id uint) (*domain.StockMovement, error) {
	var movement domain.StockMovement
	err := t.tx.First(&movement, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMovementNotFound
		}
		return nil, err
	}
	return &movement, nil
}

func (t *gormLedgerTx) SaveMovement(movement *domain.StockMovement) error {
	return t.tx.Save(movement).Error
}

func (t *gormLedgerTx) DeleteMovement(id uint) error {
	return t.tx.Delete(&domain.StockMovement{}, id).Error
}
