// Package forecast proyecta el consumo de fin de mes por convenio: media
// móvil de las últimas 3 facturas contra el run-rate diario del mes en curso.
// Es una proyección lineal deliberadamente simple — asume consumo diario
// uniforme, sin estacionalidad ni ajuste por día de semana.
package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jsresto/convenios-api/internal/application/dto"
	"github.com/jsresto/convenios-api/internal/domain/repository"
)

// Umbrales de alerta sobre el trend (%).
var (
	oscillationThreshold = decimal.NewFromInt(20) // |trend| > 20 → alta oscilación
	growthThreshold      = decimal.NewFromInt(15) // trend > 15 → crecimiento acelerado
)

const movingAverageWindow = 3 // facturas consideradas en la media móvil

// ForecastUseCase cálculo read-only, recalculado bajo demanda; sin caché ni
// estado persistido. Función pura del estado de facturas y consumos.
type ForecastUseCase struct {
	agreementRepo   repository.AgreementRepository
	invoiceRepo     repository.InvoiceRepository
	consumptionRepo repository.ConsumptionRepository
}

// NewForecastUseCase construye el caso de uso.
func NewForecastUseCase(agreementRepo repository.AgreementRepository, invoiceRepo repository.InvoiceRepository, consumptionRepo repository.ConsumptionRepository) *ForecastUseCase {
	return &ForecastUseCase{agreementRepo: agreementRepo, invoiceRepo: invoiceRepo, consumptionRepo: consumptionRepo}
}

// GetSummary proyecta todos los convenios tomando now como instante de
// referencia (el handler pasa time.Now; los tests, una fecha fija).
func (uc *ForecastUseCase) GetSummary(ctx context.Context, now time.Time) (*dto.ForecastSummaryDTO, error) {
	agreements, err := uc.agreementRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("forecast: listar convenios: %w", err)
	}

	summary := &dto.ForecastSummaryDTO{
		Agreements:            make([]dto.AgreementForecastDTO, 0, len(agreements)),
		TotalProjectedRevenue: decimal.Zero,
	}
	for _, a := range agreements {
		f, err := uc.forecastAgreement(ctx, a.ID, a.TradeName, now)
		if err != nil {
			return nil, err
		}
		summary.Agreements = append(summary.Agreements, *f)
		summary.TotalProjectedRevenue = summary.TotalProjectedRevenue.Add(f.ProjectedTotal)
		if f.GrowthAlert {
			summary.GrowthAlerts++
		}
	}
	return summary, nil
}

func (uc *ForecastUseCase) forecastAgreement(ctx context.Context, agreementID, tradeName string, now time.Time) (*dto.AgreementForecastDTO, error) {
	// Media móvil: últimas hasta 3 facturas, dividiendo por las que existan.
	totals, err := uc.invoiceRepo.LastTotals(ctx, agreementID, movingAverageWindow)
	if err != nil {
		return nil, fmt.Errorf("forecast: totales de facturas: %w", err)
	}
	movingAverage := decimal.Zero
	if len(totals) > 0 {
		sum := decimal.Zero
		for _, t := range totals {
			sum = sum.Add(t)
		}
		movingAverage = sum.Div(decimal.NewFromInt(int64(len(totals))))
	}

	// Consumo real del mes en curso, PENDING e INVOICED por igual.
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	realSoFar, err := uc.consumptionRepo.SumForAgreementSince(ctx, agreementID, monthStart)
	if err != nil {
		return nil, fmt.Errorf("forecast: consumo del mes: %w", err)
	}

	dayOfMonth := now.Day()
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()

	dailyAvg := decimal.Zero
	if dayOfMonth > 0 {
		dailyAvg = realSoFar.Div(decimal.NewFromInt(int64(dayOfMonth)))
	}
	projectedTotal := dailyAvg.Mul(decimal.NewFromInt(int64(daysInMonth)))

	trend := decimal.Zero
	if movingAverage.GreaterThan(decimal.Zero) {
		trend = projectedTotal.Sub(movingAverage).Div(movingAverage).Mul(decimal.NewFromInt(100))
	}

	return &dto.AgreementForecastDTO{
		AgreementID:     agreementID,
		TradeName:       tradeName,
		MovingAverage:   movingAverage.Round(2),
		RealAmountSoFar: realSoFar.Round(2),
		DailyAvg:        dailyAvg.Round(2),
		ProjectedTotal:  projectedTotal.Round(2),
		TrendPercent:    trend.Round(2),
		HighOscillation: trend.Abs().GreaterThan(oscillationThreshold),
		GrowthAlert:     trend.GreaterThan(growthThreshold),
	}, nil
}
