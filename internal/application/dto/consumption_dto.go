package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordConsumptionRequest body para POST /api/consumptions.
// El estado siempre entra como PENDING sin importar lo que mande el caller.
type RecordConsumptionRequest struct {
	ID          string          `json:"id,omitempty"`
	AgreementID string          `json:"agreementId"`
	EmployeeID  string          `json:"employeeId,omitempty"`
	SaleID      string          `json:"saleId,omitempty"` // clave de idempotencia cuando viene del PDV
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Quantity    int             `json:"quantity"`
	Timestamp   time.Time       `json:"timestamp,omitempty"` // vacío = ahora
}

// DailyLaunchRequest body para POST /api/consumptions/daily.
// Lanza las marmitas fijas del día: amount = quantity x fixedDailyPrice.
type DailyLaunchRequest struct {
	AgreementID string `json:"agreementId"`
	Quantity    int    `json:"quantity"`
}

// ConsumptionResponse consumo en respuestas.
type ConsumptionResponse struct {
	ID          string          `json:"id"`
	AgreementID string          `json:"agreementId"`
	EmployeeID  string          `json:"employeeId,omitempty"`
	SaleID      string          `json:"saleId,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Quantity    int             `json:"quantity"`
	Timestamp   time.Time       `json:"timestamp"`
	Status      string          `json:"status"`
	InvoiceID   string          `json:"invoiceId,omitempty"`
}
