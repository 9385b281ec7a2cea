package dto

import "github.com/shopspring/decimal"

// UpsertEmployeeRequest body para POST /api/employees.
type UpsertEmployeeRequest struct {
	ID                          string          `json:"id,omitempty"`
	AgreementID                 string          `json:"agreementId"`
	Name                        string          `json:"name"`
	TaxID                       string          `json:"taxId,omitempty"`
	Registration                string          `json:"registration,omitempty"`
	LimitAmount                 decimal.Decimal `json:"limit,omitempty"`
	CompanyContributionPercent  decimal.Decimal `json:"companyContributionPercent"`
	EmployeeContributionPercent decimal.Decimal `json:"employeeContributionPercent"`
	Active                      bool            `json:"active"`
}

// EmployeeResponse funcionario en respuestas. Los porcentajes se exponen
// siempre aunque el motor no los aplique al facturar.
type EmployeeResponse struct {
	ID                          string          `json:"id"`
	AgreementID                 string          `json:"agreementId"`
	Name                        string          `json:"name"`
	TaxID                       string          `json:"taxId,omitempty"`
	Registration                string          `json:"registration,omitempty"`
	LimitAmount                 decimal.Decimal `json:"limit,omitempty"`
	CompanyContributionPercent  decimal.Decimal `json:"companyContributionPercent"`
	EmployeeContributionPercent decimal.Decimal `json:"employeeContributionPercent"`
	Active                      bool            `json:"active"`
}
