package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jsresto/convenios-api/internal/domain/entity"
	"github.com/jsresto/convenios-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
// Las líneas de la venta van en una columna JSONB (snapshot del producto).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, order_number, customer_name, items, subtotal, discount, total,
		payment_method, timestamp, status, operator_id, agreement_id, employee_id`

// List devuelve las ventas ordenadas por timestamp descendente.
func (r *SaleRepo) List(ctx context.Context) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// GetByID devuelve la venta o nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// Upsert inserta o reemplaza una venta por ID.
func (r *SaleRepo) Upsert(ctx context.Context, s *entity.Sale) error {
	items, err := json.Marshal(s.Items)
	if err != nil {
		return fmt.Errorf("marshal sale items: %w", err)
	}
	query := `
		INSERT INTO sales (id, order_number, customer_name, items, subtotal, discount, total,
			payment_method, timestamp, status, operator_id, agreement_id, employee_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			order_number = EXCLUDED.order_number, customer_name = EXCLUDED.customer_name,
			items = EXCLUDED.items, subtotal = EXCLUDED.subtotal, discount = EXCLUDED.discount,
			total = EXCLUDED.total, payment_method = EXCLUDED.payment_method,
			timestamp = EXCLUDED.timestamp, status = EXCLUDED.status,
			agreement_id = EXCLUDED.agreement_id, employee_id = EXCLUDED.employee_id`
	_, err = r.q.Exec(ctx, query,
		s.ID, s.OrderNumber, nullIfEmpty(s.CustomerName), items, s.Subtotal, s.Discount, s.Total,
		nullIfEmpty(s.PaymentMethod), s.Timestamp, s.Status, s.OperatorID,
		nullIfEmpty(s.AgreementID), nullIfEmpty(s.EmployeeID),
	)
	if err != nil {
		return fmt.Errorf("upsert sale: %w", err)
	}
	return nil
}

// UpdateStatus cambia solo el estado de la venta.
func (r *SaleRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.q.Exec(ctx, `UPDATE sales SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var customerName, paymentMethod, agreementID, employeeID *string
	var items []byte
	err := row.Scan(
		&s.ID, &s.OrderNumber, &customerName, &items, &s.Subtotal, &s.Discount, &s.Total,
		&paymentMethod, &s.Timestamp, &s.Status, &s.OperatorID, &agreementID, &employeeID,
	)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &s.Items); err != nil {
			return nil, fmt.Errorf("unmarshal sale items: %w", err)
		}
	}
	s.CustomerName = derefStr(customerName)
	s.PaymentMethod = derefStr(paymentMethod)
	s.AgreementID = derefStr(agreementID)
	s.EmployeeID = derefStr(employeeID)
	return &s, nil
}
