package dto

import "github.com/shopspring/decimal"

// Los nombres JSON siguen el contrato camelCase que espera el frontend del PDV.

// UpsertAgreementRequest body para POST /api/agreements.
// Si ID va vacío se genera uno nuevo; si no, reemplaza todos los campos.
type UpsertAgreementRequest struct {
	ID              string          `json:"id,omitempty"`
	TaxID           string          `json:"taxId"`
	CompanyName     string          `json:"companyName"`
	TradeName       string          `json:"tradeName"`
	Responsible     string          `json:"responsible,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Email           string          `json:"email,omitempty"`
	ClosingDay      int             `json:"closingDay"`
	DueDay          int             `json:"dueDay"`
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	Type            string          `json:"type"` // FIXED_DAILY | INDIVIDUAL_CONSUMPTION
	FixedDailyQty   int             `json:"fixedDailyQty,omitempty"`
	FixedDailyPrice decimal.Decimal `json:"fixedDailyPrice,omitempty"`
	Active          bool            `json:"active"`
}

// AgreementResponse convenio en respuestas.
type AgreementResponse struct {
	ID              string          `json:"id"`
	TaxID           string          `json:"taxId"`
	CompanyName     string          `json:"companyName"`
	TradeName       string          `json:"tradeName"`
	Responsible     string          `json:"responsible,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Email           string          `json:"email,omitempty"`
	ClosingDay      int             `json:"closingDay"`
	DueDay          int             `json:"dueDay"`
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	Type            string          `json:"type"`
	FixedDailyQty   int             `json:"fixedDailyQty,omitempty"`
	FixedDailyPrice decimal.Decimal `json:"fixedDailyPrice,omitempty"`
	Active          bool            `json:"active"`
}
