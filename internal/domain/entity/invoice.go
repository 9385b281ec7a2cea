package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura de convenio. El motor solo emite en OPEN; la
// progresión a PAID/OVERDUE es responsabilidad externa.
const (
	InvoiceOpen    = "OPEN"
	InvoicePaid    = "PAID"
	InvoiceOverdue = "OVERDUE"
)

// Invoice representa la factura consolidada de un convenio para una ventana
// de fechas. Inmutable: TotalAmount es la suma exacta de los consumos que
// referencian su ID al momento de la creación y ese conjunto no cambia jamás.
type Invoice struct {
	ID          string
	AgreementID string
	PeriodStart time.Time
	PeriodEnd   time.Time
	IssueDate   time.Time
	DueDate     time.Time
	TotalAmount decimal.Decimal
	Status      string // OPEN | PAID | OVERDUE
}
