package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

// recordingMovementRepo records the paging arguments it receives so tests
// can check the limit clamping.
type recordingMovementRepo struct {
	movements     []domain.StockMovement
	lastLimit     int
	lastOffset    int
	lastProductID uint
}

func (r *recordingMovementRepo) FindByID(id uint) (*domain.StockMovement, error) {
	for i := range r.movements {
		if r.movements[i].ID == id {
			return &r.movements[i], nil
		}
	}
	return nil, domain.ErrMovementNotFound
}

func (r *recordingMovementRepo) FindAll(limit, offset int) ([]domain.StockMovement, error) {
	r.lastLimit, r.lastOffset = limit, offset
	return r.movements, nil
}

func (r *recordingMovementRepo) FindByProductID(productID uint, limit, offset int) ([]domain.StockMovement, error) {
	r.lastProductID, r.lastLimit, r.lastOffset = productID, limit, offset
	var out []domain.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *recordingMovementRepo) Count() (int64, error) {
	return int64(len(r.movements)), nil
}

type stubCategoryRepo struct {
	count int64
}

func (r *stubCategoryRepo) Create(*domain.Category) error { return nil }
func (r *stubCategoryRepo) FindByID(uint) (*domain.Category, error) {
	return nil, domain.ErrCategoryNotFound
}
func (r *stubCategoryRepo) FindByName(string) (*domain.Category, error) {
	return nil, domain.ErrCategoryNotFound
}
func (r *stubCategoryRepo) FindAll(int, int) ([]domain.Category, error) { return nil, nil }
func (r *stubCategoryRepo) Update(*domain.Category) error               { return nil }
func (r *stubCategoryRepo) Delete(uint) error                           { return nil }
func (r *stubCategoryRepo) Count() (int64, error)                       { return r.count, nil }

type stubProductRepo struct {
	count int64
	stock int64
}

func (r *stubProductRepo) Create(*domain.Product) error { return nil }
func (r *stubProductRepo) FindByID(uint) (*domain.Product, error) {
	return nil, domain.ErrProductNotFound
}
func (r *stubProductRepo) FindAll(int, int) ([]domain.Product, error) { return nil, nil }
func (r *stubProductRepo) FindByCategory(uint, int, int) ([]domain.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) Update(*domain.Product) error { return nil }
func (r *stubProductRepo) Delete(uint) error            { return nil }
func (r *stubProductRepo) Count() (int64, error)        { return r.count, nil }
func (r *stubProductRepo) TotalStock() (int64, error)   { return r.stock, nil }

func TestListMovementsDefaultsAndClamp(t *testing.T) {
	repo := &recordingMovementRepo{}
	handler := NewListMovementsHandler(repo)

	_, err := handler.Handle(ListMovementsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 10, repo.lastLimit)

	_, err = handler.Handle(ListMovementsQuery{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastLimit)
}

func TestListMovementsByProduct(t *testing.T) {
	repo := &recordingMovementRepo{movements: []domain.StockMovement{
		{ID: 1, ProductID: 1, MovementType: domain.MovementIn, Quantity: 5},
		{ID: 2, ProductID: 2, MovementType: domain.MovementOut, Quantity: 3},
	}}
	handler := NewListMovementsHandler(repo)

	movements, err := handler.Handle(ListMovementsQuery{ProductID: 2})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, uint(2), movements[0].ProductID)
}

func TestGetMovement(t *testing.T) {
	repo := &recordingMovementRepo{movements: []domain.StockMovement{
		{ID: 3, ProductID: 1, MovementType: domain.MovementIn, Quantity: 5},
	}}
	handler := NewGetMovementHandler(repo)

	movement, err := handler.Handle(GetMovementQuery{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, uint(3), movement.ID)

	_, err = handler.Handle(GetMovementQuery{ID: 9})
	assert.ErrorIs(t, err, domain.ErrMovementNotFound)
}

func TestGetStats(t *testing.T) {
	handler := NewGetStatsHandler(
		&stubCategoryRepo{count: 2},
		&stubProductRepo{count: 5, stock: 37},
		&recordingMovementRepo{movements: make([]domain.StockMovement, 4)},
	)

	stats, err := handler.Handle(GetStatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalCategories)
	assert.Equal(t, int64(5), stats.TotalProducts)
	assert.Equal(t, int64(4), stats.TotalMovements)
	assert.Equal(t, int64(37), stats.UnitsOnHand)
}
