package repository

import (
	"context"

	"github.com/jsresto/convenios-api/internal/domain/entity"
)

// AgreementRepository define el puerto de persistencia para Agreement.
// No hay Delete: los convenios nunca se borran (historial referenciado por
// consumos y facturas); Active=false es la baja lógica.
type AgreementRepository interface {
	List(ctx context.Context) ([]*entity.Agreement, error)
	GetByID(ctx context.Context, id string) (*entity.Agreement, error)
	// Upsert inserta o reemplaza por completo los campos mutables (por ID).
	Upsert(ctx context.Context, agreement *entity.Agreement) error
}
