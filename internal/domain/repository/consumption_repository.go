package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jsresto/convenios-api/internal/domain/entity"
)

// ConsumptionRepository define el puerto de persistencia para Consumption.
type ConsumptionRepository interface {
	// List filtra por convenio cuando agreementID no es vacío. Ordena por timestamp descendente.
	List(ctx context.Context, agreementID string) ([]*entity.Consumption, error)
	GetByID(ctx context.Context, id string) (*entity.Consumption, error)
	GetBySaleID(ctx context.Context, saleID string) (*entity.Consumption, error)
	// Create inserta el consumo. Si SaleID no es vacío y ya existe un consumo
	// con ese SaleID (índice único parcial), no inserta y devuelve false sin
	// error: reintentos del PDV son idempotentes.
	Create(ctx context.Context, c *entity.Consumption) (inserted bool, err error)
	// DeletePending borra el consumo solo si sigue PENDING (condición en el
	// mismo statement para no perder la carrera contra un cierre concurrente).
	DeletePending(ctx context.Context, id string) (deleted bool, err error)

	// ListPendingForUpdate selecciona los consumos PENDING del convenio con
	// timestamp en [from, to] bloqueando las filas (SELECT ... FOR UPDATE).
	// Solo tiene sentido dentro de una transacción.
	ListPendingForUpdate(ctx context.Context, agreementID string, from, to time.Time) ([]*entity.Consumption, error)
	// MarkInvoiced pasa a INVOICED y asigna invoiceID a las filas indicadas
	// que sigan PENDING; devuelve cuántas afectó.
	MarkInvoiced(ctx context.Context, ids []string, invoiceID string) (int64, error)

	// SumForAgreementSince suma Amount de todos los consumos del convenio
	// (PENDING e INVOICED) con timestamp >= since.
	SumForAgreementSince(ctx context.Context, agreementID string, since time.Time) (decimal.Decimal, error)
}
