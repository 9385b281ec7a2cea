package pos

import (
	"context"

	"github.com/jsresto/convenios-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repos de ventas, productos y consumos. Completar una venta a convenio
// descuenta stock y registra el consumo como una sola unidad atómica.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		consumptionRepo repository.ConsumptionRepository,
	) error) error
}
