package entity

import "github.com/shopspring/decimal"

// Modelos de facturación de un convenio corporativo.
const (
	AgreementFixedDaily            = "FIXED_DAILY"            // marmita fija diaria (cantidad x precio unitario)
	AgreementIndividualConsumption = "INDIVIDUAL_CONSUMPTION" // consumo individual por funcionario
)

// Agreement representa un convenio con una empresa: sus empleados consumen
// en el restaurante y la empresa recibe una factura consolidada por período.
// FixedDailyQty/FixedDailyPrice solo tienen significado cuando Type es
// FIXED_DAILY; el storage no lo fuerza.
type Agreement struct {
	ID              string
	TaxID           string // CNPJ de la empresa
	CompanyName     string // razón social
	TradeName       string // nombre fantasía
	Responsible     string
	Phone           string
	Email           string
	ClosingDay      int // día del mes en que cierra la ventana de consumo (1-31)
	DueDay          int // día del mes de vencimiento de la factura (1-31), informativo
	CreditLimit     decimal.Decimal // límite de crédito, consultivo (no lo fuerza el motor)
	Type            string          // FIXED_DAILY | INDIVIDUAL_CONSUMPTION
	FixedDailyQty   int
	FixedDailyPrice decimal.Decimal
	Active          bool
}
