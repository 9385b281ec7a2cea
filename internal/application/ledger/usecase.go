// Package ledger contiene los casos de uso del libro de consumos de
// convenios: registro (PDV o lanzamiento diario), listado y anulación.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/jsresto/convenios-api/internal/application/dto"
	"github.com/jsresto/convenios-api/internal/domain"
	"github.com/jsresto/convenios-api/internal/domain/entity"
	"github.com/jsresto/convenios-api/internal/domain/repository"
	"github.com/jsresto/convenios-api/pkg/metrics"
)

// ConsumptionUseCase casos de uso sobre el libro de consumos.
type ConsumptionUseCase struct {
	consumptionRepo repository.ConsumptionRepository
	agreementRepo   repository.AgreementRepository
}

// NewConsumptionUseCase construye el caso de uso.
func NewConsumptionUseCase(consumptionRepo repository.ConsumptionRepository, agreementRepo repository.AgreementRepository) *ConsumptionUseCase {
	return &ConsumptionUseCase{consumptionRepo: consumptionRepo, agreementRepo: agreementRepo}
}

// List lista los consumos, filtrados por convenio cuando agreementID no es vacío.
func (uc *ConsumptionUseCase) List(ctx context.Context, agreementID string) ([]dto.ConsumptionResponse, error) {
	consumptions, err := uc.consumptionRepo.List(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConsumptionResponse, 0, len(consumptions))
	for _, c := range consumptions {
		out = append(out, *toResponse(c))
	}
	return out, nil
}

// Record registra un consumo. Siempre entra PENDING y sin factura, sin
// importar lo que mande el caller. Si trae SaleID y ya existe un consumo para
// esa venta, el reintento es idempotente: se devuelve el registro existente.
func (uc *ConsumptionUseCase) Record(ctx context.Context, operatorID string, in dto.RecordConsumptionRequest) (*dto.ConsumptionResponse, error) {
	if in.AgreementID == "" || !in.Amount.GreaterThan(decimal.Zero) || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	agreement, err := uc.agreementRepo.GetByID(ctx, in.AgreementID)
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, domain.ErrAgreementNotFound
	}

	c := &entity.Consumption{
		ID:          in.ID,
		AgreementID: in.AgreementID,
		EmployeeID:  in.EmployeeID,
		SaleID:      in.SaleID,
		Description: in.Description,
		Amount:      in.Amount,
		Quantity:    in.Quantity,
		Timestamp:   in.Timestamp,
		Status:      entity.ConsumptionPending,
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now()
	}

	inserted, err := uc.consumptionRepo.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("registrar consumo: %w", err)
	}
	if !inserted {
		// Reintento del PDV: ya existe un consumo para esa venta.
		existing, err := uc.consumptionRepo.GetBySaleID(ctx, c.SaleID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return toResponse(existing), nil
		}
		return nil, domain.ErrDuplicate
	}

	metrics.ConsumptionsRecorded.Inc()
	log.Debug().Str("operator_id", operatorID).Str("consumption_id", c.ID).Msg("consumo registrado")
	return toResponse(c), nil
}

// DailyLaunch lanza las marmitas fijas del día para un convenio FIXED_DAILY:
// amount = quantity x fixedDailyPrice, con descripción sintética.
func (uc *ConsumptionUseCase) DailyLaunch(ctx context.Context, operatorID string, in dto.DailyLaunchRequest) (*dto.ConsumptionResponse, error) {
	if in.AgreementID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	agreement, err := uc.agreementRepo.GetByID(ctx, in.AgreementID)
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, domain.ErrAgreementNotFound
	}
	if agreement.Type != entity.AgreementFixedDaily || !agreement.FixedDailyPrice.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidState
	}

	return uc.Record(ctx, operatorID, dto.RecordConsumptionRequest{
		AgreementID: in.AgreementID,
		Description: fmt.Sprintf("Lançamento Diário: %d Marmitas Fixas", in.Quantity),
		Amount:      agreement.FixedDailyPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
		Quantity:    in.Quantity,
	})
}

// Void anula (borra físicamente) un consumo que sigue PENDING. Un consumo
// INVOICED es inmutable: la anulación falla con ErrInvalidState y el registro
// queda intacto. La condición de estado va en el mismo statement de borrado
// para no perder la carrera contra un cierre de período concurrente.
func (uc *ConsumptionUseCase) Void(ctx context.Context, operatorID, id string) error {
	deleted, err := uc.consumptionRepo.DeletePending(ctx, id)
	if err != nil {
		return fmt.Errorf("anular consumo: %w", err)
	}
	if deleted {
		log.Info().Str("operator_id", operatorID).Str("consumption_id", id).Msg("consumo anulado")
		return nil
	}
	c, err := uc.consumptionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return domain.ErrInvalidState
}

func toResponse(c *entity.Consumption) *dto.ConsumptionResponse {
	return &dto.ConsumptionResponse{
		ID:          c.ID,
		AgreementID: c.AgreementID,
		EmployeeID:  c.EmployeeID,
		SaleID:      c.SaleID,
		Description: c.Description,
		Amount:      c.Amount,
		Quantity:    c.Quantity,
		Timestamp:   c.Timestamp,
		Status:      c.Status,
		InvoiceID:   c.InvoiceID,
	}
}
