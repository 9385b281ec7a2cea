package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jsresto/convenios-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice.
// Append-only: no hay Update ni Delete; la escritura ocurre únicamente
// dentro del cierre de período.
type InvoiceRepository interface {
	// List filtra por convenio cuando agreementID no es vacío. Ordena por issue_date descendente.
	List(ctx context.Context, agreementID string) ([]*entity.Invoice, error)
	Create(ctx context.Context, invoice *entity.Invoice) error
	// LastTotals devuelve los totales de las últimas n facturas del convenio
	// ordenadas por issue_date descendente (insumo de la media móvil).
	LastTotals(ctx context.Context, agreementID string, n int) ([]decimal.Decimal, error)
}
