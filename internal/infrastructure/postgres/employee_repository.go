package postgres

import (
	"context"
	"fmt"

	"github.com/jsresto/convenios-api/internal/domain/entity"
	"github.com/jsresto/convenios-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación de EmployeeRepository (usable con pool o tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// List devuelve los funcionarios, filtrados por convenio cuando agreementID no es vacío.
func (r *EmployeeRepo) List(ctx context.Context, agreementID string) ([]*entity.Employee, error) {
	query := `
		SELECT id, agreement_id, name, tax_id, registration, limit_amount,
		       company_contribution_percent, employee_contribution_percent, active
		FROM employees`
	var args []any
	if agreementID != "" {
		query += ` WHERE agreement_id = $1`
		args = append(args, agreementID)
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		var taxID, registration *string
		if err := rows.Scan(
			&e.ID, &e.AgreementID, &e.Name, &taxID, &registration, &e.LimitAmount,
			&e.CompanyContributionPercent, &e.EmployeeContributionPercent, &e.Active,
		); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		e.TaxID = derefStr(taxID)
		e.Registration = derefStr(registration)
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Upsert inserta o reemplaza todos los campos mutables por ID.
func (r *EmployeeRepo) Upsert(ctx context.Context, e *entity.Employee) error {
	query := `
		INSERT INTO employees (id, agreement_id, name, tax_id, registration, limit_amount,
			company_contribution_percent, employee_contribution_percent, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			agreement_id = EXCLUDED.agreement_id, name = EXCLUDED.name,
			tax_id = EXCLUDED.tax_id, registration = EXCLUDED.registration,
			limit_amount = EXCLUDED.limit_amount,
			company_contribution_percent = EXCLUDED.company_contribution_percent,
			employee_contribution_percent = EXCLUDED.employee_contribution_percent,
			active = EXCLUDED.active`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.AgreementID, e.Name, nullIfEmpty(e.TaxID), nullIfEmpty(e.Registration),
		e.LimitAmount, e.CompanyContributionPercent, e.EmployeeContributionPercent, e.Active,
	)
	if err != nil {
		return fmt.Errorf("upsert employee: %w", err)
	}
	return nil
}
