package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jsresto/convenios-api/internal/domain/entity"
	"github.com/jsresto/convenios-api/internal/domain/repository"
)

var _ repository.AgreementRepository = (*AgreementRepo)(nil)

// AgreementRepo implementación de AgreementRepository (usable con pool o tx).
type AgreementRepo struct {
	q Querier
}

// NewAgreementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAgreementRepository(q Querier) *AgreementRepo {
	return &AgreementRepo{q: q}
}

const agreementColumns = `id, tax_id, company_name, trade_name, responsible, phone, email,
		closing_day, due_day, credit_limit, type, fixed_daily_qty, fixed_daily_price, active`

// List devuelve todos los convenios ordenados por nombre fantasía.
func (r *AgreementRepo) List(ctx context.Context) ([]*entity.Agreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM agreements ORDER BY trade_name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list agreements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Agreement
	for rows.Next() {
		a, err := scanAgreement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// GetByID devuelve el convenio o nil si no existe.
func (r *AgreementRepo) GetByID(ctx context.Context, id string) (*entity.Agreement, error) {
	query := `SELECT ` + agreementColumns + ` FROM agreements WHERE id = $1`
	a, err := scanAgreement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

// Upsert inserta o reemplaza todos los campos mutables por ID.
func (r *AgreementRepo) Upsert(ctx context.Context, a *entity.Agreement) error {
	query := `
		INSERT INTO agreements (id, tax_id, company_name, trade_name, responsible, phone, email,
			closing_day, due_day, credit_limit, type, fixed_daily_qty, fixed_daily_price, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			tax_id = EXCLUDED.tax_id, company_name = EXCLUDED.company_name,
			trade_name = EXCLUDED.trade_name, responsible = EXCLUDED.responsible,
			phone = EXCLUDED.phone, email = EXCLUDED.email,
			closing_day = EXCLUDED.closing_day, due_day = EXCLUDED.due_day,
			credit_limit = EXCLUDED.credit_limit, type = EXCLUDED.type,
			fixed_daily_qty = EXCLUDED.fixed_daily_qty,
			fixed_daily_price = EXCLUDED.fixed_daily_price, active = EXCLUDED.active`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.TaxID, a.CompanyName, a.TradeName, a.Responsible, a.Phone, a.Email,
		a.ClosingDay, a.DueDay, a.CreditLimit, a.Type, a.FixedDailyQty, a.FixedDailyPrice, a.Active,
	)
	if err != nil {
		return fmt.Errorf("upsert agreement: %w", err)
	}
	return nil
}

func scanAgreement(row pgx.Row) (*entity.Agreement, error) {
	var a entity.Agreement
	err := row.Scan(
		&a.ID, &a.TaxID, &a.CompanyName, &a.TradeName, &a.Responsible, &a.Phone, &a.Email,
		&a.ClosingDay, &a.DueDay, &a.CreditLimit, &a.Type, &a.FixedDailyQty, &a.FixedDailyPrice, &a.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan agreement: %w", err)
	}
	return &a, nil
}
