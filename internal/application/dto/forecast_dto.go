package dto

import "github.com/shopspring/decimal"

// AgreementForecastDTO proyección de consumo de un convenio para el mes en
// curso: media móvil de las últimas 3 facturas contra run-rate diario.
type AgreementForecastDTO struct {
	AgreementID     string          `json:"agreementId"`
	TradeName       string          `json:"tradeName"`
	MovingAverage   decimal.Decimal `json:"movingAverage"`
	RealAmountSoFar decimal.Decimal `json:"realAmountSoFar"`
	DailyAvg        decimal.Decimal `json:"dailyAvg"`
	ProjectedTotal  decimal.Decimal `json:"projectedTotal"`
	TrendPercent    decimal.Decimal `json:"trend"`
	HighOscillation bool            `json:"highOscillation"` // |trend| > 20
	GrowthAlert     bool            `json:"growthAlert"`     // trend > 15
}

// ForecastSummaryDTO proyección del portafolio completo de convenios.
type ForecastSummaryDTO struct {
	Agreements            []AgreementForecastDTO `json:"agreements"`
	TotalProjectedRevenue decimal.Decimal        `json:"totalProjectedRevenue"`
	GrowthAlerts          int                    `json:"growthAlerts"`
}
