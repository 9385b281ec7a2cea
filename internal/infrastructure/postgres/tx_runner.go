package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jsresto/convenios-api/internal/application/billing"
	"github.com/jsresto/convenios-api/internal/application/pos"
	"github.com/jsresto/convenios-api/internal/domain/repository"
)

// Ensure TxRunner implements billing.TxRunner and pos.TxRunner.
var _ billing.TxRunner = (*TxRunner)(nil)
var _ pos.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBilling inicia una transacción con repos de consumos y facturas (cierre de período).
// Hace Commit si fn retorna nil; si no, Rollback completo.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	consumptionRepo repository.ConsumptionRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	consumptionRepo := NewConsumptionRepository(tx)
	invoiceRepo := NewInvoiceRepository(tx)

	if err := fn(consumptionRepo, invoiceRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale inicia una transacción con repos de ventas, productos y consumos
// (completar o cancelar una venta del PDV).
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	consumptionRepo repository.ConsumptionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	saleRepo := NewSaleRepository(tx)
	productRepo := NewProductRepository(tx)
	consumptionRepo := NewConsumptionRepository(tx)

	if err := fn(saleRepo, productRepo, consumptionRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
