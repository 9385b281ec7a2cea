package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsresto/convenios-api/internal/application/dto"
	"github.com/jsresto/convenios-api/internal/application/usecase"
	"github.com/jsresto/convenios-api/internal/domain"
	"github.com/jsresto/convenios-api/internal/domain/entity"
)

type fakeAgreementRepo struct {
	agreements map[string]*entity.Agreement
}

func newFakeAgreementRepo() *fakeAgreementRepo {
	return &fakeAgreementRepo{agreements: make(map[string]*entity.Agreement)}
}

func (r *fakeAgreementRepo) List(_ context.Context) ([]*entity.Agreement, error) {
	var out []*entity.Agreement
	for _, a := range r.agreements {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAgreementRepo) GetByID(_ context.Context, id string) (*entity.Agreement, error) {
	return r.agreements[id], nil
}

func (r *fakeAgreementRepo) Upsert(_ context.Context, a *entity.Agreement) error {
	cp := *a
	r.agreements[a.ID] = &cp
	return nil
}

func validAgreement() dto.UpsertAgreementRequest {
	return dto.UpsertAgreementRequest{
		TaxID:       "12.345.678/0001-90",
		CompanyName: "Transportes Norte Ltda",
		TradeName:   "Transportes Norte",
		ClosingDay:  25,
		DueDay:      5,
		CreditLimit: decimal.NewFromInt(5000),
		Type:        entity.AgreementIndividualConsumption,
		Active:      true,
	}
}

// Upsert sin ID genera uno; con ID reemplaza todos los campos.
func TestAgreementUpsert_CreaYReemplaza(t *testing.T) {
	repo := newFakeAgreementRepo()
	uc := usecase.NewAgreementUseCase(repo)
	ctx := context.Background()

	created, err := uc.Upsert(ctx, "op-001", validAgreement())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Transportes Norte", created.TradeName)

	in := validAgreement()
	in.ID = created.ID
	in.TradeName = "Transportes Norte SA"
	in.Active = false
	updated, err := uc.Upsert(ctx, "op-001", in)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Transportes Norte SA", updated.TradeName)
	assert.False(t, updated.Active)
	assert.Len(t, repo.agreements, 1, "el upsert por ID no debe crear otro registro")
}

func TestAgreementUpsert_Validaciones(t *testing.T) {
	uc := usecase.NewAgreementUseCase(newFakeAgreementRepo())
	ctx := context.Background()

	cases := []func(*dto.UpsertAgreementRequest){
		func(in *dto.UpsertAgreementRequest) { in.TaxID = "" },
		func(in *dto.UpsertAgreementRequest) { in.TradeName = "" },
		func(in *dto.UpsertAgreementRequest) { in.Type = "MENSAL" },
		func(in *dto.UpsertAgreementRequest) { in.ClosingDay = 0 },
		func(in *dto.UpsertAgreementRequest) { in.ClosingDay = 32 },
		func(in *dto.UpsertAgreementRequest) { in.DueDay = 0 },
		func(in *dto.UpsertAgreementRequest) { in.DueDay = 32 },
	}
	for _, mutate := range cases {
		in := validAgreement()
		mutate(&in)
		_, err := uc.Upsert(ctx, "op-001", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "input %+v", in)
	}
}

func TestAgreementList(t *testing.T) {
	repo := newFakeAgreementRepo()
	uc := usecase.NewAgreementUseCase(repo)
	ctx := context.Background()

	_, err := uc.Upsert(ctx, "op-001", validAgreement())
	require.NoError(t, err)

	fixed := validAgreement()
	fixed.TradeName = "Constructora Sur"
	fixed.Type = entity.AgreementFixedDaily
	fixed.FixedDailyQty = 20
	fixed.FixedDailyPrice = decimal.RequireFromString("11.50")
	_, err = uc.Upsert(ctx, "op-001", fixed)
	require.NoError(t, err)

	out, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
