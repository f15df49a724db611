package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

// memoryCascadeTx applies the cascade statements to in-memory state and
// records the order they ran in.
type memoryCascadeTx struct {
	categories map[uint]domain.Category
	products   map[uint]domain.Product
	movements  map[uint]domain.StockMovement
	calls      []string
}

func newMemoryCascadeTx() *memoryCascadeTx {
	return &memoryCascadeTx{
		categories: make(map[uint]domain.Category),
		products:   make(map[uint]domain.Product),
		movements:  make(map[uint]domain.StockMovement),
	}
}

func (t *memoryCascadeTx) ProductIDsByCategory(categoryID uint) ([]uint, error) {
	t.calls = append(t.calls, "pluck_products")
	var ids []uint
	for id, p := range t.products {
		if p.CategoryID == categoryID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (t *memoryCascadeTx) DeleteMovementsOfProducts(productIDs []uint) error {
	t.calls = append(t.calls, "delete_movements")
	for id, m := range t.movements {
		for _, pid := range productIDs {
			if m.ProductID == pid {
				delete(t.movements, id)
			}
		}
	}
	return nil
}

func (t *memoryCascadeTx) DeleteProductsOfCategory(categoryID uint) error {
	t.calls = append(t.calls, "delete_products")
	for id, p := range t.products {
		if p.CategoryID == categoryID {
			delete(t.products, id)
		}
	}
	return nil
}

func (t *memoryCascadeTx) DeleteCategory(categoryID uint) error {
	t.calls = append(t.calls, "delete_category")
	delete(t.categories, categoryID)
	return nil
}

func TestCascadeDeleteCategory(t *testing.T) {
	tx := newMemoryCascadeTx()
	tx.categories[1] = domain.Category{ID: 1, Name: "Electronics"}
	tx.categories[2] = domain.Category{ID: 2, Name: "Books"}
	tx.products[10] = domain.Product{ID: 10, CategoryID: 1}
	tx.products[11] = domain.Product{ID: 11, CategoryID: 1}
	tx.products[12] = domain.Product{ID: 12, CategoryID: 2}
	tx.movements[100] = domain.StockMovement{ID: 100, ProductID: 10, MovementType: domain.MovementIn, Quantity: 5}
	tx.movements[101] = domain.StockMovement{ID: 101, ProductID: 11, MovementType: domain.MovementIn, Quantity: 3}
	tx.movements[102] = domain.StockMovement{ID: 102, ProductID: 11, MovementType: domain.MovementOut, Quantity: 1}
	tx.movements[103] = domain.StockMovement{ID: 103, ProductID: 12, MovementType: domain.MovementIn, Quantity: 7}

	require.NoError(t, cascadeDeleteCategory(tx, 1))

	// Both products of the category and all their movements are gone.
	assert.NotContains(t, tx.categories, uint(1))
	assert.NotContains(t, tx.products, uint(10))
	assert.NotContains(t, tx.products, uint(11))
	assert.NotContains(t, tx.movements, uint(100))
	assert.NotContains(t, tx.movements, uint(101))
	assert.NotContains(t, tx.movements, uint(102))

	// The other category and its product are untouched.
	assert.Contains(t, tx.categories, uint(2))
	assert.Contains(t, tx.products, uint(12))
	assert.Contains(t, tx.movements, uint(103))

	// Movements go first, then products, then the category.
	assert.Equal(t, []string{"pluck_products", "delete_movements", "delete_products", "delete_category"}, tx.calls)
}

func TestCascadeDeleteCategoryWithoutProducts(t *testing.T) {
	tx := newMemoryCascadeTx()
	tx.categories[1] = domain.Category{ID: 1, Name: "Empty"}

	require.NoError(t, cascadeDeleteCategory(tx, 1))

	assert.NotContains(t, tx.categories, uint(1))
	assert.Equal(t, []string{"pluck_products", "delete_category"}, tx.calls)
}
