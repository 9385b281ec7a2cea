package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jsresto/convenios-api/internal/application/dto"
	"github.com/jsresto/convenios-api/internal/domain"
	"github.com/jsresto/convenios-api/internal/domain/entity"
	"github.com/jsresto/convenios-api/internal/domain/repository"
)

// AgreementUseCase CRUD de convenios corporativos. Sin delete: Active=false
// es la baja lógica, para que consumos y facturas históricas sigan resolviendo.
type AgreementUseCase struct {
	agreementRepo repository.AgreementRepository
}

// NewAgreementUseCase construye el caso de uso.
func NewAgreementUseCase(agreementRepo repository.AgreementRepository) *AgreementUseCase {
	return &AgreementUseCase{agreementRepo: agreementRepo}
}

// List lista todos los convenios ordenados por nombre fantasía.
func (uc *AgreementUseCase) List(ctx context.Context) ([]dto.AgreementResponse, error) {
	agreements, err := uc.agreementRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AgreementResponse, 0, len(agreements))
	for _, a := range agreements {
		out = append(out, *toAgreementResponse(a))
	}
	return out, nil
}

// Upsert inserta o reemplaza un convenio por ID. Requiere CNPJ y nombre
// fantasía no vacíos, tipo de facturación válido y días de calendario 1-31.
func (uc *AgreementUseCase) Upsert(ctx context.Context, operatorID string, in dto.UpsertAgreementRequest) (*dto.AgreementResponse, error) {
	if in.TaxID == "" || in.TradeName == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.AgreementFixedDaily && in.Type != entity.AgreementIndividualConsumption {
		return nil, domain.ErrInvalidInput
	}
	if in.ClosingDay < 1 || in.ClosingDay > 31 || in.DueDay < 1 || in.DueDay > 31 {
		return nil, domain.ErrInvalidInput
	}

	a := &entity.Agreement{
		ID:              in.ID,
		TaxID:           in.TaxID,
		CompanyName:     in.CompanyName,
		TradeName:       in.TradeName,
		Responsible:     in.Responsible,
		Phone:           in.Phone,
		Email:           in.Email,
		ClosingDay:      in.ClosingDay,
		DueDay:          in.DueDay,
		CreditLimit:     in.CreditLimit,
		Type:            in.Type,
		FixedDailyQty:   in.FixedDailyQty,
		FixedDailyPrice: in.FixedDailyPrice,
		Active:          in.Active,
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if err := uc.agreementRepo.Upsert(ctx, a); err != nil {
		return nil, err
	}
	return toAgreementResponse(a), nil
}

func toAgreementResponse(a *entity.Agreement) *dto.AgreementResponse {
	return &dto.AgreementResponse{
		ID:              a.ID,
		TaxID:           a.TaxID,
		CompanyName:     a.CompanyName,
		TradeName:       a.TradeName,
		Responsible:     a.Responsible,
		Phone:           a.Phone,
		Email:           a.Email,
		ClosingDay:      a.ClosingDay,
		DueDay:          a.DueDay,
		CreditLimit:     a.CreditLimit,
		Type:            a.Type,
		FixedDailyQty:   a.FixedDailyQty,
		FixedDailyPrice: a.FixedDailyPrice,
		Active:          a.Active,
	}
}
