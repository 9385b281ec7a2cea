package dto

import "github.com/shopspring/decimal"

// ClosePeriodRequest body para POST /api/invoices/close-period.
// Las fechas van como YYYY-MM-DD; el fin de ventana es inclusivo hasta las
// 23:59:59 de ese día.
type ClosePeriodRequest struct {
	AgreementID string `json:"agreementId"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// InvoiceResponse factura de convenio en respuestas.
type InvoiceResponse struct {
	ID          string          `json:"id"`
	AgreementID string          `json:"agreementId"`
	PeriodStart string          `json:"periodStart"`
	PeriodEnd   string          `json:"periodEnd"`
	IssueDate   string          `json:"issueDate"`
	DueDate     string          `json:"dueDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"` // OPEN | PAID | OVERDUE
}
