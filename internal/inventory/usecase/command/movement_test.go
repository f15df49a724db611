package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

// fakeLedger is an in-memory domain.Ledger with transactional semantics:
// the callback works on a copy of the state and the copy replaces the
// original only when the callback returns nil.
type fakeLedger struct {
	products  map[uint]domain.Product
	movements map[uint]domain.StockMovement
	nextID    uint
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		products:  make(map[uint]domain.Product),
		movements: make(map[uint]domain.StockMovement),
		nextID:    1,
	}
}

func (l *fakeLedger) addProduct(id uint, stock int) {
	l.products[id] = domain.Product{ID: id, StockQuantity: stock}
}

func (l *fakeLedger) addMovement(m domain.StockMovement) uint {
	m.ID = l.nextID
	l.nextID++
	l.movements[m.ID] = m
	return m.ID
}

func (l *fakeLedger) Reconcile(ctx context.Context, fn func(tx domain.LedgerTx) error) error {
	tx := &fakeLedgerTx{
		products:  make(map[uint]domain.Product, len(l.products)),
		movements: make(map[uint]domain.StockMovement, len(l.movements)),
		nextID:    l.nextID,
	}
	for id, p := range l.products {
		tx.products[id] = p
	}
	for id, m := range l.movements {
		tx.movements[id] = m
	}

	if err := fn(tx); err != nil {
		return err
	}

	l.products = tx.products
	l.movements = tx.movements
	l.nextID = tx.nextID
	return nil
}

type fakeLedgerTx struct {
	products  map[uint]domain.Product
	movements map[uint]domain.StockMovement
	nextID    uint
}

func (tx *fakeLedgerTx) ProductForUpdate(id uint) (*domain.Product, error) {
	p, ok := tx.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (tx *fakeLedgerTx) SaveProduct(product *domain.Product) error {
	tx.products[product.ID] = *product
	return nil
}

func (tx *fakeLedgerTx) MovementByID(id uint) (*domain.StockMovement, error) {
	m, ok := tx.movements[id]
	if !ok {
		return nil, domain.ErrMovementNotFound
	}
	return &m, nil
}

func (tx *fakeLedgerTx) SaveMovement(movement *domain.StockMovement) error {
	if movement.ID == 0 {
		movement.ID = tx.nextID
		tx.nextID++
	}
	tx.movements[movement.ID] = *movement
	return nil
}

func (tx *fakeLedgerTx) DeleteMovement(id uint) error {
	delete(tx.movements, id)
	return nil
}

func TestCreateMovementIn(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addProduct(1, 0)
	handler := NewCreateMovementHandler(ledger)

	movement, err := handler.Handle(context.Background(), CreateMovementCommand{
		ProductID:    1,
		MovementType: domain.MovementIn,
		Quantity:     10,
		Reason:       "initial delivery",
	})
	require.NoError(t, err)
	require.NotNil(t, movement)

	assert.Equal(t, 10, ledger.products[1].StockQuantity)
	assert.Equal(t, domain.MovementIn, ledger.movements[movement.ID].MovementType)
	assert.False(t, movement.Timestamp.IsZero())
}

func TestCreateMovementOut(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addProduct(1, 10)
	handler := NewCreateMovementHandler(ledger)

	_, err := handler.Handle(context.Background(), CreateMovementCommand{
		ProductID:    1,
		MovementType: domain.MovementOut,
		Quantity:     4,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, ledger.products[1].StockQuantity)
}

func TestCreateMovementInsufficientStock(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addProduct(1, 6)
	handler := NewCreateMovementHandler(ledger)

	_, err := handler.Handle(context.Background(), CreateMovementCommand{
		ProductID:    1,
		MovementType: domain.MovementOut,
		Quantity:     100,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nothing committed: quantity unchanged, no movement recorded.
	assert.Equal(t, 6, ledger.products[1].StockQuantity)
	assert.Empty(t, ledger.movements)
}

func TestCreateMovementValidation(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addProduct(1, 5)
	handler := NewCreateMovementHandler(ledger)

	_, err := handler.Handle(context.Background(), CreateMovementCommand{
		ProductID:    1,
		MovementType: domain.MovementIn,
		Quantity:     0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = handler.Handle(context.Background(), CreateMovementCommand{
		ProductID:    1,
		MovementType: "TRANSFER",
		Quantity:     5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)

	_, err = handler.Handle(context.Background(), CreateMovementCommand{
		ProductID:    99,
		MovementType: domain.MovementIn,
		Quantity:     5,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestUpdateMovementQuantity(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addProduct(1, 10)
	id := ledger.addMovement(domain.StockMovement{
		ProductID:    1,
		MovementType: domain.MovementIn,
		Quantity:     10,
	})
	handler := NewUpdateMovementHandler(ledger)

	updated, err := handler.Handle(context.Background(), UpdateMovementCommand{
		ID:           id,
		MovementType: domain.MovementIn,
		Quantity:     4,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, updated.Quantity)
	assert.Equal(t, 4, ledger.products[1].StockQuantity)
}

func TestUpdateMovementTypeFlipRejected(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addProduct(1, 10)
	id := ledger.addMovement(domain.StockMovement{
		ProductID:    1,
		MovementType: domain.MovementIn,
		Quantity:     10,
	})
	handler := NewUpdateMovementHandler(ledger)

	// Reversing the IN 10 and applying OUT 3 nets -13 against a stock of
	// 10, so the update must fail and leave everything untouched.
	_, err := handler.Handle(context.Background(), UpdateMovementCommand{
		ID:           id,
		MovementType: domain.MovementOut,
		Quantity:     3,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, ledger.products[1].StockQuantity)
	assert.Equal(t, domain.MovementIn, ledger.movements[id].MovementType)
	assert.Equal(t, 10, ledger.movements[id].Quantity)
}

func TestUpdateMovementNetDelta(t *testing.T) {
	ledger := newFakeLedger()
	// Stock of 5 left from an IN 10 after later consumption. Shrinking
	// the IN to 8 is valid (final stock 3) even though a standalone
	// reversal would dip below zero.
	ledger.addProduct(1, 5)
	id := ledger.addMovement(domain.StockMovement{
		ProductID:    1,
		MovementType: domain.MovementIn,
		Quantity:     10,
	})
	handler := NewUpdateMovementHandler(ledger)

	_, err := handler.Handle(context.Background(), UpdateMovementCommand{
		ID:           id,
		MovementType: domain.MovementIn,
		Quantity:     8,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, ledger.products[1].StockQuantity)
}

func TestUpdateMovementCrossProduct(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addProduct(1, 10)
	ledger.addProduct(2, 0)
	id := ledger.addMovement(domain.StockMovement{
		ProductID:    1,
		MovementType: domain.MovementIn,
		Quantity:     10,
	})
	handler := NewUpdateMovementHandler(ledger)

	updated, err := handler.Handle(context.Background(), UpdateMovementCommand{
		ID:           id,
		ProductID:    2,
		MovementType: domain.MovementIn,
		Quantity:     10,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(2), updated.ProductID)
	assert.Equal(t, 0, ledger.products[1].StockQuantity)
	assert.Equal(t, 10, ledger.products[2].StockQuantity)
}

func TestUpdateMovementCrossProductRejected(t *testing.T) {
	ledger := newFakeLedger()
	// Part of the IN 10 was already consumed, so its reversal on product
	// 1 would go negative. The whole update rolls back.
	ledger.addProduct(1, 4)
	ledger.addProduct(2, 0)
	id := ledger.addMovement(domain.StockMovement{
		ProductID:    1,
		MovementType: domain.MovementIn,
		Quantity:     10,
	})
	handler := NewUpdateMovementHandler(ledger)

	_, err := handler.Handle(context.Background(), UpdateMovementCommand{
		ID:           id,
		ProductID:    2,
		MovementType: domain.MovementIn,
		Quantity:     10,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 4, ledger.products[1].StockQuantity)
	assert.Equal(t, 0, ledger.products[2].StockQuantity)
	assert.Equal(t, uint(1), ledger.movements[id].ProductID)
}

func TestUpdateMovementNotFound(t *testing.T) {
	ledger := newFakeLedger()
	handler := NewUpdateMovementHandler(ledger)

	_, err := handler.Handle(context.Background(), UpdateMovementCommand{
		ID:           42,
		MovementType: domain.MovementIn,
		Quantity:     1,
	})
	assert.ErrorIs(t, err, domain.ErrMovementNotFound)
}

func TestDeleteMovementRestoresStock(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addProduct(1, 2)
	id := ledger.addMovement(domain.StockMovement{
		ProductID:    1,
		MovementType: domain.MovementOut,
		Quantity:     5,
	})
	handler := NewDeleteMovementHandler(ledger)

	err := handler.Handle(context.Background(), DeleteMovementCommand{ID: id})
	require.NoError(t, err)

	assert.Equal(t, 7, ledger.products[1].StockQuantity)
	assert.Empty(t, ledger.movements)
}

func TestDeleteMovementInsufficientStock(t *testing.T) {
	ledger := newFakeLedger()
	// The IN 10 was mostly consumed; reversing it would drive the stock
	// negative, so the delete is refused and the movement stays.
	ledger.addProduct(1, 4)
	id := ledger.addMovement(domain.StockMovement{
		ProductID:    1,
		MovementType: domain.MovementIn,
		Quantity:     10,
	})
	handler := NewDeleteMovementHandler(ledger)

	err := handler.Handle(context.Background(), DeleteMovementCommand{ID: id})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 4, ledger.products[1].StockQuantity)
	assert.Contains(t, ledger.movements, id)
}

func TestDeleteThenRecreateMovement(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addProduct(1, 6)
	id := ledger.addMovement(domain.StockMovement{
		ProductID:    1,
		MovementType: domain.MovementOut,
		Quantity:     4,
	})

	deleteHandler := NewDeleteMovementHandler(ledger)
	require.NoError(t, deleteHandler.Handle(context.Background(), DeleteMovementCommand{ID: id}))
	assert.Equal(t, 10, ledger.products[1].StockQuantity)

	createHandler := NewCreateMovementHandler(ledger)
	_, err := createHandler.Handle(context.Background(), CreateMovementCommand{
		ProductID:    1,
		MovementType: domain.MovementOut,
		Quantity:     4,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, ledger.products[1].StockQuantity)
}
