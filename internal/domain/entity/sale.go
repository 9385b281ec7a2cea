package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta del PDV.
const (
	SaleOpen      = "OPEN"
	SaleCompleted = "COMPLETED"
	SaleCancelled = "CANCELLED"
)

// Métodos de pago.
const (
	PaymentCash      = "CASH"
	PaymentCredit    = "CREDIT"
	PaymentDebit     = "DEBIT"
	PaymentPix       = "PIX"
	PaymentAgreement = "AGREEMENT" // venta a cuenta de un convenio corporativo
)

// SaleItem línea de una venta (snapshot del producto al momento de vender).
type SaleItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	Total     decimal.Decimal `json:"total"`
}

// Sale representa una venta del punto de venta. Cuando PaymentMethod es
// AGREEMENT y la venta se completa, se registra un Consumption contra el
// convenio en la misma transacción que el descuento de stock.
type Sale struct {
	ID            string
	OrderNumber   string
	CustomerName  string
	Items         []SaleItem
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	Timestamp     time.Time
	Status        string // OPEN | COMPLETED | CANCELLED
	OperatorID    string
	AgreementID   string // opcional
	EmployeeID    string // opcional
}
