package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un consumo. La única transición válida es PENDING → INVOICED y
// la ejecuta exclusivamente el cierre de período. Un consumo PENDING puede
// anularse (borrado físico); uno INVOICED es inmutable.
const (
	ConsumptionPending  = "PENDING"
	ConsumptionInvoiced = "INVOICED"
)

// Consumption representa un evento facturable contra un convenio: una venta
// del PDV pagada con convenio o un lanzamiento diario de marmitas fijas.
type Consumption struct {
	ID          string
	AgreementID string
	EmployeeID  string // opcional
	SaleID      string // opcional; presente cuando se originó en el PDV (clave de idempotencia)
	Description string
	Amount      decimal.Decimal
	Quantity    int
	Timestamp   time.Time // momento del evento, no de la creación del registro
	Status      string    // PENDING | INVOICED
	InvoiceID   string    // seteado una única vez al facturar
}
