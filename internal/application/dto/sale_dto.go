package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemDTO línea de venta del PDV.
type SaleItemDTO struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	Total     decimal.Decimal `json:"total"`
}

// SaveSaleRequest body para POST /api/sales (upsert por ID: el PDV guarda la
// comanda abierta y luego la completa con el método de pago).
type SaveSaleRequest struct {
	ID            string          `json:"id,omitempty"`
	OrderNumber   string          `json:"orderNumber"`
	CustomerName  string          `json:"customerName,omitempty"`
	Items         []SaleItemDTO   `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Timestamp     time.Time       `json:"timestamp,omitempty"`
	Status        string          `json:"status"`
	AgreementID   string          `json:"agreementId,omitempty"`
	EmployeeID    string          `json:"employeeId,omitempty"`
}

// SaleResponse venta en respuestas.
type SaleResponse struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"orderNumber"`
	CustomerName  string          `json:"customerName,omitempty"`
	Items         []SaleItemDTO   `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
	Status        string          `json:"status"`
	OperatorID    string          `json:"operatorId"`
	AgreementID   string          `json:"agreementId,omitempty"`
	EmployeeID    string          `json:"employeeId,omitempty"`
}
