package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jsresto/convenios-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	List(ctx context.Context) ([]*entity.Product, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Upsert(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	// AdjustStock suma delta (negativo para descontar) al stock del producto.
	AdjustStock(ctx context.Context, productID string, delta decimal.Decimal) error
}
