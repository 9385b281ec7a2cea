package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jsresto/convenios-api/internal/domain/entity"
	"github.com/jsresto/convenios-api/internal/domain/repository"
)

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

// ConsumptionRepo implementación de ConsumptionRepository (usable con pool o tx).
type ConsumptionRepo struct {
	q Querier
}

// NewConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

const consumptionColumns = `id, agreement_id, employee_id, sale_id, description, amount,
		quantity, timestamp, status, invoice_id`

// List devuelve los consumos, filtrados por convenio cuando agreementID no es
// vacío, ordenados por timestamp descendente.
func (r *ConsumptionRepo) List(ctx context.Context, agreementID string) ([]*entity.Consumption, error) {
	query := `SELECT ` + consumptionColumns + ` FROM consumptions`
	var args []any
	if agreementID != "" {
		query += ` WHERE agreement_id = $1`
		args = append(args, agreementID)
	}
	query += ` ORDER BY timestamp DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list consumptions: %w", err)
	}
	defer rows.Close()
	return collectConsumptions(rows)
}

// GetByID devuelve el consumo o nil si no existe.
func (r *ConsumptionRepo) GetByID(ctx context.Context, id string) (*entity.Consumption, error) {
	query := `SELECT ` + consumptionColumns + ` FROM consumptions WHERE id = $1`
	c, err := scanConsumption(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consumption: %w", err)
	}
	return c, nil
}

// GetBySaleID devuelve el consumo originado por la venta o nil si no existe.
func (r *ConsumptionRepo) GetBySaleID(ctx context.Context, saleID string) (*entity.Consumption, error) {
	query := `SELECT ` + consumptionColumns + ` FROM consumptions WHERE sale_id = $1`
	c, err := scanConsumption(r.q.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consumption by sale: %w", err)
	}
	return c, nil
}

// Create inserta el consumo. El índice único parcial sobre sale_id hace el
// insert idempotente para reintentos del PDV: un duplicado no inserta y
// devuelve false sin error.
func (r *ConsumptionRepo) Create(ctx context.Context, c *entity.Consumption) (bool, error) {
	query := `
		INSERT INTO consumptions (id, agreement_id, employee_id, sale_id, description,
			amount, quantity, timestamp, status, invoice_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (sale_id) WHERE sale_id IS NOT NULL DO NOTHING`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.AgreementID, nullIfEmpty(c.EmployeeID), nullIfEmpty(c.SaleID), c.Description,
		c.Amount, c.Quantity, c.Timestamp, c.Status, nullIfEmpty(c.InvoiceID),
	)
	if err != nil {
		return false, fmt.Errorf("insert consumption: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeletePending borra el consumo solo si sigue PENDING. La condición va en el
// mismo statement: contra un cierre concurrente gana quien comitea primero.
func (r *ConsumptionRepo) DeletePending(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM consumptions WHERE id = $1 AND status = $2`,
		id, entity.ConsumptionPending,
	)
	if err != nil {
		return false, fmt.Errorf("delete consumption: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListPendingForUpdate selecciona con lock (FOR UPDATE) los consumos PENDING
// del convenio con timestamp en [from, to]. Solo dentro de una transacción.
func (r *ConsumptionRepo) ListPendingForUpdate(ctx context.Context, agreementID string, from, to time.Time) ([]*entity.Consumption, error) {
	query := `SELECT ` + consumptionColumns + `
		FROM consumptions
		WHERE agreement_id = $1 AND status = $2 AND timestamp >= $3 AND timestamp <= $4
		ORDER BY timestamp
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, agreementID, entity.ConsumptionPending, from, to)
	if err != nil {
		return nil, fmt.Errorf("select pending consumptions: %w", err)
	}
	defer rows.Close()
	return collectConsumptions(rows)
}

// MarkInvoiced pasa a INVOICED las filas indicadas que sigan PENDING y les
// asigna la factura. Devuelve cuántas afectó para que el caller verifique.
func (r *ConsumptionRepo) MarkInvoiced(ctx context.Context, ids []string, invoiceID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE consumptions
		SET status = $1, invoice_id = $2
		WHERE id = ANY($3) AND status = $4`,
		entity.ConsumptionInvoiced, invoiceID, ids, entity.ConsumptionPending,
	)
	if err != nil {
		return 0, fmt.Errorf("mark consumptions invoiced: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SumForAgreementSince suma Amount (ambos estados) del convenio desde since.
func (r *ConsumptionRepo) SumForAgreementSince(ctx context.Context, agreementID string, since time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM consumptions
		WHERE agreement_id = $1 AND timestamp >= $2`,
		agreementID, since,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum consumptions: %w", err)
	}
	return sum, nil
}

func collectConsumptions(rows pgx.Rows) ([]*entity.Consumption, error) {
	var list []*entity.Consumption
	for rows.Next() {
		c, err := scanConsumption(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanConsumption(row pgx.Row) (*entity.Consumption, error) {
	var c entity.Consumption
	var employeeID, saleID, invoiceID *string
	err := row.Scan(
		&c.ID, &c.AgreementID, &employeeID, &saleID, &c.Description, &c.Amount,
		&c.Quantity, &c.Timestamp, &c.Status, &invoiceID,
	)
	if err != nil {
		return nil, err
	}
	c.EmployeeID = derefStr(employeeID)
	c.SaleID = derefStr(saleID)
	c.InvoiceID = derefStr(invoiceID)
	return &c, nil
}
