package billing

import (
	"context"

	"github.com/jsresto/convenios-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repos de consumos y facturas. El cierre de período depende de esto para su
// atomicidad: si fn retorna error el caller hace rollback completo.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		consumptionRepo repository.ConsumptionRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}
