package entity

import "github.com/shopspring/decimal"

// Employee representa un funcionario habilitado a consumir bajo un convenio.
// Los porcentajes de contribución son metadata del reparto interno de la
// empresa: el cierre de período factura el 100% al convenio sin aplicarlos.
type Employee struct {
	ID                          string
	AgreementID                 string
	Name                        string
	TaxID                       string // CPF, opcional
	Registration                string // matrícula interna, opcional
	LimitAmount                 decimal.Decimal // límite individual, opcional e informativo
	CompanyContributionPercent  decimal.Decimal // % pagado por la empresa
	EmployeeContributionPercent decimal.Decimal // % pagado por el funcionario
	Active                      bool
}
