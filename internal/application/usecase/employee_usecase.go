package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jsresto/convenios-api/internal/application/dto"
	"github.com/jsresto/convenios-api/internal/domain"
	"github.com/jsresto/convenios-api/internal/domain/entity"
	"github.com/jsresto/convenios-api/internal/domain/repository"
)

// EmployeeUseCase CRUD de funcionarios de convenio. Los porcentajes de
// contribución son metadata: el cierre factura siempre el 100% al convenio.
type EmployeeUseCase struct {
	employeeRepo  repository.EmployeeRepository
	agreementRepo repository.AgreementRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(employeeRepo repository.EmployeeRepository, agreementRepo repository.AgreementRepository) *EmployeeUseCase {
	return &EmployeeUseCase{employeeRepo: employeeRepo, agreementRepo: agreementRepo}
}

// List lista los funcionarios, filtrados por convenio cuando agreementID no es vacío.
func (uc *EmployeeUseCase) List(ctx context.Context, agreementID string) ([]dto.EmployeeResponse, error) {
	employees, err := uc.employeeRepo.List(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, *toEmployeeResponse(e))
	}
	return out, nil
}

// Upsert inserta o reemplaza un funcionario por ID. Requiere nombre no vacío
// y que el convenio exista (ErrAgreementNotFound si no).
func (uc *EmployeeUseCase) Upsert(ctx context.Context, operatorID string, in dto.UpsertEmployeeRequest) (*dto.EmployeeResponse, error) {
	if in.Name == "" || in.AgreementID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CompanyContributionPercent.LessThan(decimal.Zero) || in.EmployeeContributionPercent.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	agreement, err := uc.agreementRepo.GetByID(ctx, in.AgreementID)
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, domain.ErrAgreementNotFound
	}

	e := &entity.Employee{
		ID:                          in.ID,
		AgreementID:                 in.AgreementID,
		Name:                        in.Name,
		TaxID:                       in.TaxID,
		Registration:                in.Registration,
		LimitAmount:                 in.LimitAmount,
		CompanyContributionPercent:  in.CompanyContributionPercent,
		EmployeeContributionPercent: in.EmployeeContributionPercent,
		Active:                      in.Active,
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if err := uc.employeeRepo.Upsert(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:                          e.ID,
		AgreementID:                 e.AgreementID,
		Name:                        e.Name,
		TaxID:                       e.TaxID,
		Registration:                e.Registration,
		LimitAmount:                 e.LimitAmount,
		CompanyContributionPercent:  e.CompanyContributionPercent,
		EmployeeContributionPercent: e.EmployeeContributionPercent,
		Active:                      e.Active,
	}
}
