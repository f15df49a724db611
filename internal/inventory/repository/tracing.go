package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ledgerkeep/inventory/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// TracedLedger wraps a Ledger with a span per reconciliation
type TracedLedger struct {
	inner domain.Ledger
}

func NewTracedLedger(inner domain.Ledger) *TracedLedger {
	return &TracedLedger{inner: inner}
}

func (l *TracedLedger) Reconcile(ctx context.Context, fn func(tx domain.LedgerTx) error) error {
	ctx, span := tracer.Start(ctx, "ledger.Reconcile")
	defer span.End()

	err := l.inner.Reconcile(ctx, func(tx domain.LedgerTx) error {
		return fn(&tracedLedgerTx{ctx: ctx, inner: tx})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// tracedLedgerTx records per-operation spans inside a reconciliation
type tracedLedgerTx struct {
	ctx   context.Context
	inner domain.LedgerTx
}

func (t *tracedLedgerTx) ProductForUpdate(id uint) (*domain.Product, error) {
	_, span := tracer.Start(t.ctx, "ledger.ProductForUpdate",
		trace.WithAttributes(attribute.Int("product.id", int(id))),
	)
	defer span.End()

	product, err := t.inner.ProductForUpdate(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("product.stock_quantity", product.StockQuantity))
	return product, nil
}

func (t *tracedLedgerTx) SaveProduct(product *domain.Product) error {
	_, span := tracer.Start(t.ctx, "ledger.SaveProduct",
		trace.WithAttributes(
			attribute.Int("product.id", int(product.ID)),
			attribute.Int("product.stock_quantity", product.StockQuantity),
		),
	)
	defer span.End()

	err := t.inner.SaveProduct(product)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (t *tracedLedgerTx) MovementByID(id uint) (*domain.StockMovement, error) {
	_, span := tracer.Start(t.ctx, "ledger.MovementByID",
		trace.WithAttributes(attribute.Int("movement.id", int(id))),
	)
	defer span.End()

	movement, err := t.inner.MovementByID(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return movement, nil
}

func (t *tracedLedgerTx) SaveMovement(movement *domain.StockMovement) error {
	_, span := tracer.Start(t.ctx, "ledger.SaveMovement",
		trace.WithAttributes(
			attribute.Int("movement.product_id", int(movement.ProductID)),
			attribute.String("movement.type", movement.MovementType),
			attribute.Int("movement.quantity", movement.Quantity),
		),
	)
	defer span.End()

	err := t.inner.SaveMovement(movement)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (t *tracedLedgerTx) DeleteMovement(id uint) error {
	_, span := tracer.Start(t.ctx, "ledger.DeleteMovement",
		trace.WithAttributes(attribute.Int("movement.id", int(id))),
	)
	defer span.End()

	err := t.inner.DeleteMovement(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
