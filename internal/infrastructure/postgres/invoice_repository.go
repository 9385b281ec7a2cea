package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jsresto/convenios-api/internal/domain/entity"
	"github.com/jsresto/convenios-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Append-only: la única escritura es Create, desde el cierre de período.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// List devuelve las facturas, filtradas por convenio cuando agreementID no es
// vacío, ordenadas por issue_date descendente.
func (r *InvoiceRepo) List(ctx context.Context, agreementID string) ([]*entity.Invoice, error) {
	query := `
		SELECT id, agreement_id, period_start, period_end, issue_date, due_date, total_amount, status
		FROM invoices`
	var args []any
	if agreementID != "" {
		query += ` WHERE agreement_id = $1`
		args = append(args, agreementID)
	}
	query += ` ORDER BY issue_date DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.AgreementID, &inv.PeriodStart, &inv.PeriodEnd,
			&inv.IssueDate, &inv.DueDate, &inv.TotalAmount, &inv.Status,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// Create persiste la factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, agreement_id, period_start, period_end, issue_date, due_date, total_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.AgreementID, inv.PeriodStart, inv.PeriodEnd,
		inv.IssueDate, inv.DueDate, inv.TotalAmount, inv.Status,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// LastTotals devuelve los totales de las últimas n facturas del convenio
// ordenadas por issue_date descendente.
func (r *InvoiceRepo) LastTotals(ctx context.Context, agreementID string, n int) ([]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT total_amount FROM invoices
		WHERE agreement_id = $1
		ORDER BY issue_date DESC
		LIMIT $2`,
		agreementID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("last invoice totals: %w", err)
	}
	defer rows.Close()

	var totals []decimal.Decimal
	for rows.Next() {
		var t decimal.Decimal
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan invoice total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
