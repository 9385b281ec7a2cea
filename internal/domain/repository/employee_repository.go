package repository

import (
	"context"

	"github.com/jsresto/convenios-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee.
type EmployeeRepository interface {
	// List filtra por convenio cuando agreementID no es vacío.
	List(ctx context.Context, agreementID string) ([]*entity.Employee, error)
	Upsert(ctx context.Context, employee *entity.Employee) error
}
