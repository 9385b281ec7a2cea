package pos_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsresto/convenios-api/internal/application/dto"
	"github.com/jsresto/convenios-api/internal/application/pos"
	"github.com/jsresto/convenios-api/internal/domain"
	"github.com/jsresto/convenios-api/internal/domain/entity"
	"github.com/jsresto/convenios-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria compartiendo un único estado para emular la transacción
// ──────────────────────────────────────────────────────────────────────────────

type posStore struct {
	sales        map[string]*entity.Sale
	stock        map[string]decimal.Decimal
	consumptions map[string]*entity.Consumption
}

func newPosStore() *posStore {
	return &posStore{
		sales:        make(map[string]*entity.Sale),
		stock:        make(map[string]decimal.Decimal),
		consumptions: make(map[string]*entity.Consumption),
	}
}

type fakeSaleRepo struct{ s *posStore }

func (r *fakeSaleRepo) List(_ context.Context) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.s.sales {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	return r.s.sales[id], nil
}

func (r *fakeSaleRepo) Upsert(_ context.Context, sale *entity.Sale) error {
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) UpdateStatus(_ context.Context, id, status string) error {
	if s, ok := r.s.sales[id]; ok {
		s.Status = status
	}
	return nil
}

type fakeProductRepo struct{ s *posStore }

func (r *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error)          { return nil, nil }
func (r *fakeProductRepo) GetByID(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Upsert(_ context.Context, _ *entity.Product) error { return nil }
func (r *fakeProductRepo) Delete(_ context.Context, _ string) error          { return nil }

func (r *fakeProductRepo) AdjustStock(_ context.Context, productID string, delta decimal.Decimal) error {
	r.s.stock[productID] = r.s.stock[productID].Add(delta)
	return nil
}

type fakeConsumptionRepo struct{ s *posStore }

func (r *fakeConsumptionRepo) List(_ context.Context, _ string) ([]*entity.Consumption, error) {
	return nil, nil
}
func (r *fakeConsumptionRepo) GetByID(_ context.Context, _ string) (*entity.Consumption, error) {
	return nil, nil
}

func (r *fakeConsumptionRepo) GetBySaleID(_ context.Context, saleID string) (*entity.Consumption, error) {
	for _, c := range r.s.consumptions {
		if c.SaleID == saleID {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeConsumptionRepo) Create(_ context.Context, c *entity.Consumption) (bool, error) {
	if c.SaleID != "" {
		for _, existing := range r.s.consumptions {
			if existing.SaleID == c.SaleID {
				return false, nil
			}
		}
	}
	cp := *c
	r.s.consumptions[c.ID] = &cp
	return true, nil
}

func (r *fakeConsumptionRepo) DeletePending(_ context.Context, _ string) (bool, error) {
	return false, nil
}
func (r *fakeConsumptionRepo) ListPendingForUpdate(_ context.Context, _ string, _, _ time.Time) ([]*entity.Consumption, error) {
	return nil, nil
}
func (r *fakeConsumptionRepo) MarkInvoiced(_ context.Context, _ []string, _ string) (int64, error) {
	return 0, nil
}
func (r *fakeConsumptionRepo) SumForAgreementSince(_ context.Context, _ string, _ time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type fakeAgreementRepo struct {
	agreements map[string]*entity.Agreement
}

func (r *fakeAgreementRepo) List(_ context.Context) ([]*entity.Agreement, error) { return nil, nil }
func (r *fakeAgreementRepo) GetByID(_ context.Context, id string) (*entity.Agreement, error) {
	return r.agreements[id], nil
}
func (r *fakeAgreementRepo) Upsert(_ context.Context, a *entity.Agreement) error {
	r.agreements[a.ID] = a
	return nil
}

type fakeTxRunner struct{ s *posStore }

func (t *fakeTxRunner) RunSale(ctx context.Context, fn func(
	repository.SaleRepository, repository.ProductRepository, repository.ConsumptionRepository,
) error) error {
	return fn(&fakeSaleRepo{s: t.s}, &fakeProductRepo{s: t.s}, &fakeConsumptionRepo{s: t.s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

const testAgreementID = "agr-001"

func newSaleFixture() (*pos.SaleUseCase, *posStore) {
	store := newPosStore()
	store.stock["prod-1"] = decimal.NewFromInt(10)
	agreements := &fakeAgreementRepo{agreements: map[string]*entity.Agreement{
		testAgreementID: {ID: testAgreementID, TradeName: "Transportes Norte", Active: true},
	}}
	uc := pos.NewSaleUseCase(&fakeTxRunner{s: store}, &fakeSaleRepo{s: store}, agreements)
	return uc, store
}

func saleRequest(id, status, payment string) dto.SaveSaleRequest {
	return dto.SaveSaleRequest{
		ID:          id,
		OrderNumber: "0042",
		Items: []dto.SaleItemDTO{{
			ID: "item-1", ProductID: "prod-1", Name: "Marmita Grande",
			Price: decimal.RequireFromString("19.00"), Quantity: decimal.NewFromInt(2),
			Unit: entity.UnitUN, Total: decimal.RequireFromString("38.00"),
		}},
		Subtotal:      decimal.RequireFromString("38.00"),
		Total:         decimal.RequireFromString("38.00"),
		PaymentMethod: payment,
		Status:        status,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Completar una venta AGREEMENT descuenta stock y registra el consumo con la
// venta como clave de idempotencia, todo de una.
func TestSave_VentaConvenioCompletadaRegistraConsumo(t *testing.T) {
	uc, store := newSaleFixture()
	in := saleRequest("sale-1", entity.SaleCompleted, entity.PaymentAgreement)
	in.AgreementID = testAgreementID

	out, err := uc.Save(context.Background(), "op-001", in)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleCompleted, out.Status)

	assert.True(t, store.stock["prod-1"].Equal(decimal.NewFromInt(8)),
		"stock 10 - 2 = 8, fue %s", store.stock["prod-1"])

	require.Len(t, store.consumptions, 1)
	for _, c := range store.consumptions {
		assert.Equal(t, "sale-1", c.SaleID)
		assert.Equal(t, testAgreementID, c.AgreementID)
		assert.True(t, c.Amount.Equal(decimal.RequireFromString("38.00")))
		assert.Equal(t, "PDV Pedido 0042", c.Description)
		assert.Equal(t, entity.ConsumptionPending, c.Status)
	}
}

// Venta en efectivo: descuenta stock pero no toca el libro de consumos.
func TestSave_VentaEfectivoNoGeneraConsumo(t *testing.T) {
	uc, store := newSaleFixture()

	_, err := uc.Save(context.Background(), "op-001", saleRequest("sale-1", entity.SaleCompleted, entity.PaymentCash))
	require.NoError(t, err)
	assert.True(t, store.stock["prod-1"].Equal(decimal.NewFromInt(8)))
	assert.Empty(t, store.consumptions)
}

// Comanda abierta: se guarda sin tocar stock; al completarla después sí.
func TestSave_ComandaAbiertaNoDescuentaStock(t *testing.T) {
	uc, store := newSaleFixture()

	_, err := uc.Save(context.Background(), "op-001", saleRequest("sale-1", entity.SaleOpen, ""))
	require.NoError(t, err)
	assert.True(t, store.stock["prod-1"].Equal(decimal.NewFromInt(10)))

	_, err = uc.Save(context.Background(), "op-001", saleRequest("sale-1", entity.SaleCompleted, entity.PaymentCash))
	require.NoError(t, err)
	assert.True(t, store.stock["prod-1"].Equal(decimal.NewFromInt(8)))
}

// Re-guardar una venta ya completada falla y no vuelve a descontar stock.
func TestSave_ReenvioDeVentaCompletadaNoDuplicaDescuento(t *testing.T) {
	uc, store := newSaleFixture()
	in := saleRequest("sale-1", entity.SaleCompleted, entity.PaymentCash)

	_, err := uc.Save(context.Background(), "op-001", in)
	require.NoError(t, err)

	_, err = uc.Save(context.Background(), "op-001", in)
	require.ErrorIs(t, err, domain.ErrInvalidState)
	assert.True(t, store.stock["prod-1"].Equal(decimal.NewFromInt(8)),
		"el stock no debe descontarse dos veces")
}

// AGREEMENT exige convenio válido.
func TestSave_ConvenioRequeridoParaPagoAgreement(t *testing.T) {
	uc, _ := newSaleFixture()
	ctx := context.Background()

	in := saleRequest("sale-1", entity.SaleCompleted, entity.PaymentAgreement)
	_, err := uc.Save(ctx, "op-001", in)
	require.ErrorIs(t, err, domain.ErrInvalidInput, "sin agreementId debe fallar")

	in.AgreementID = "no-existe"
	_, err = uc.Save(ctx, "op-001", in)
	require.ErrorIs(t, err, domain.ErrAgreementNotFound)
}

func TestSave_SinItemsEsInvalida(t *testing.T) {
	uc, _ := newSaleFixture()
	in := saleRequest("sale-1", entity.SaleOpen, "")
	in.Items = nil
	_, err := uc.Save(context.Background(), "op-001", in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Cancelar una venta completada devuelve el stock; cancelar dos veces es no-op.
func TestCancel_DevuelveStockSoloSiEstabaCompletada(t *testing.T) {
	uc, store := newSaleFixture()

	_, err := uc.Save(context.Background(), "op-001", saleRequest("sale-1", entity.SaleCompleted, entity.PaymentCash))
	require.NoError(t, err)
	require.True(t, store.stock["prod-1"].Equal(decimal.NewFromInt(8)))

	require.NoError(t, uc.Cancel(context.Background(), "op-001", "sale-1"))
	assert.Equal(t, entity.SaleCancelled, store.sales["sale-1"].Status)
	assert.True(t, store.stock["prod-1"].Equal(decimal.NewFromInt(10)), "el stock debe volver a 10")

	// Segunda cancelación: idempotente, sin re-stock.
	require.NoError(t, uc.Cancel(context.Background(), "op-001", "sale-1"))
	assert.True(t, store.stock["prod-1"].Equal(decimal.NewFromInt(10)))
}

func TestCancel_VentaInexistente(t *testing.T) {
	uc, _ := newSaleFixture()
	err := uc.Cancel(context.Background(), "op-001", "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
