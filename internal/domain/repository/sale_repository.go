package repository

import (
	"context"

	"github.com/jsresto/convenios-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale (PDV).
type SaleRepository interface {
	List(ctx context.Context) ([]*entity.Sale, error)
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	Upsert(ctx context.Context, sale *entity.Sale) error
	UpdateStatus(ctx context.Context, id, status string) error
}
