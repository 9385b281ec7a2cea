package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsresto/convenios-api/internal/application/billing"
	"github.com/jsresto/convenios-api/internal/application/dto"
	"github.com/jsresto/convenios-api/internal/domain"
	"github.com/jsresto/convenios-api/internal/domain/entity"
	"github.com/jsresto/convenios-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El fakeTxRunner emula la transacción con snapshot: si fn
// retorna error se restaura el estado previo, igual que un rollback real.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	consumptions map[string]*entity.Consumption
	invoices     []*entity.Invoice

	failMarkInvoiced bool // fuerza el fallo post-inserción de factura
}

func newFakeStore() *fakeStore {
	return &fakeStore{consumptions: make(map[string]*entity.Consumption)}
}

func (s *fakeStore) snapshot() *fakeStore {
	c := newFakeStore()
	c.failMarkInvoiced = s.failMarkInvoiced
	for id, v := range s.consumptions {
		cp := *v
		c.consumptions[id] = &cp
	}
	for _, inv := range s.invoices {
		cp := *inv
		c.invoices = append(c.invoices, &cp)
	}
	return c
}

func (s *fakeStore) restore(from *fakeStore) {
	s.consumptions = from.consumptions
	s.invoices = from.invoices
}

type fakeConsumptionRepo struct{ s *fakeStore }

func (r *fakeConsumptionRepo) List(_ context.Context, agreementID string) ([]*entity.Consumption, error) {
	var out []*entity.Consumption
	for _, c := range r.s.consumptions {
		if agreementID == "" || c.AgreementID == agreementID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConsumptionRepo) GetByID(_ context.Context, id string) (*entity.Consumption, error) {
	return r.s.consumptions[id], nil
}

func (r *fakeConsumptionRepo) GetBySaleID(_ context.Context, saleID string) (*entity.Consumption, error) {
	for _, c := range r.s.consumptions {
		if c.SaleID != "" && c.SaleID == saleID {
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

func (r *fakeConsumptionRepo) DeletePending(_ context.Context, id string) (bool, error) {
	c, ok := r.s.consumptions[id]
	if !ok || c.Status != entity.ConsumptionPending {
		return false, nil
	}
	delete(r.s.consumptions, id)
	return true, nil
}

func (r *fakeConsumptionRepo) ListPendingForUpdate(_ context.Context, agreementID string, from, to time.Time) ([]*entity.Consumption, error) {
	var out []*entity.Consumption
	for _, c := range r.s.consumptions {
		if c.AgreementID != agreementID || c.Status != entity.ConsumptionPending {
			continue
		}
		if c.Timestamp.Before(from) || c.Timestamp.After(to) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeConsumptionRepo) MarkInvoiced(_ context.Context, ids []string, invoiceID string) (int64, error) {
	if r.s.failMarkInvoiced {
		return 0, errors.New("fallo simulado de storage")
	}
	var affected int64
	for _, id := range ids {
		c, ok := r.s.consumptions[id]
		if !ok || c.Status != entity.ConsumptionPending {
			continue
		}
		c.Status = entity.ConsumptionInvoiced
		c.InvoiceID = invoiceID
		affected++
	}
	return affected, nil
}

func (r *fakeConsumptionRepo) SumForAgreementSince(_ context.Context, agreementID string, since time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, c := range r.s.consumptions {
		if c.AgreementID == agreementID && !c.Timestamp.Before(since) {
			sum = sum.Add(c.Amount)
		}
	}
	return sum, nil
}

type fakeInvoiceRepo struct{ s *fakeStore }

func (r *fakeInvoiceRepo) List(_ context.Context, agreementID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if agreementID == "" || inv.AgreementID == agreementID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Create(_ context.Context, invoice *entity.Invoice) error {
	cp := *invoice
	r.s.invoices = append(r.s.invoices, &cp)
	return nil
}

func (r *fakeInvoiceRepo) LastTotals(_ context.Context, agreementID string, n int) ([]decimal.Decimal, error) {
	var out []decimal.Decimal
	for i := len(r.s.invoices) - 1; i >= 0 && len(out) < n; i-- {
		if r.s.invoices[i].AgreementID == agreementID {
			out = append(out, r.s.invoices[i].TotalAmount)
		}
	}
	return out, nil
}

type fakeAgreementRepo struct {
	agreements map[string]*entity.Agreement
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
	r.agreements[a.ID] = a
	return nil
}

type fakeTxRunner struct{ s *fakeStore }

func (t *fakeTxRunner) RunBilling(ctx context.Context, fn func(repository.ConsumptionRepository, repository.InvoiceRepository) error) error {
	before := t.s.snapshot()
	err := fn(&fakeConsumptionRepo{s: t.s}, &fakeInvoiceRepo{s: t.s})
	if err != nil {
		t.s.restore(before)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del escenario
// ──────────────────────────────────────────────────────────────────────────────

const (
	testAgreementID = "agr-001"
	testOperatorID  = "op-001"
)

func newClosePeriodFixture() (*billing.ClosePeriodUseCase, *fakeStore) {
	store := newFakeStore()
	agreements := &fakeAgreementRepo{agreements: map[string]*entity.Agreement{
		testAgreementID: {
			ID:        testAgreementID,
			TaxID:     "12.345.678/0001-90",
			TradeName: "Transportes Norte",
			Type:      entity.AgreementIndividualConsumption,
			Active:    true,
		},
	}}
	uc := billing.NewClosePeriodUseCase(&fakeTxRunner{s: store}, agreements, &fakeInvoiceRepo{s: store})
	return uc, store
}

func addConsumption(s *fakeStore, id string, day int, amount string, status string) {
	s.consumptions[id] = &entity.Consumption{
		ID:          id,
		AgreementID: testAgreementID,
		Description: "consumo de prueba",
		Amount:      decimal.RequireFromString(amount),
		Quantity:    1,
		Timestamp:   time.Date(2026, time.March, day, 12, 30, 0, 0, time.Local),
		Status:      status,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Cierre normal: solo los PENDING dentro de la ventana entran a la factura;
// los INVOICED previos y los de fuera de ventana quedan intactos.
func TestClosePeriod_FacturaSoloPendientesEnVentana(t *testing.T) {
	uc, store := newClosePeriodFixture()
	addConsumption(store, "c1", 5, "100.00", entity.ConsumptionPending)
	addConsumption(store, "c2", 20, "250.50", entity.ConsumptionPending)
	addConsumption(store, "c3", 10, "75.25", entity.ConsumptionInvoiced) // ya facturado
	addConsumption(store, "c4", 31, "999.99", entity.ConsumptionPending) // fuera de ventana

	out, err := uc.ClosePeriod(context.Background(), testOperatorID, dto.ClosePeriodRequest{
		AgreementID: testAgreementID,
		Start:       "2026-03-01",
		End:         "2026-03-30",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("350.50")),
		"el total debe ser la suma exacta de los pendientes en ventana, fue %s", out.TotalAmount)
	assert.Equal(t, entity.InvoiceOpen, out.Status)
	assert.Equal(t, testAgreementID, out.AgreementID)

	require.Len(t, store.invoices, 1)
	assert.Equal(t, entity.ConsumptionInvoiced, store.consumptions["c1"].Status)
	assert.Equal(t, out.ID, store.consumptions["c1"].InvoiceID)
	assert.Equal(t, entity.ConsumptionInvoiced, store.consumptions["c2"].Status)
	assert.Equal(t, entity.ConsumptionPending, store.consumptions["c4"].Status,
		"el consumo fuera de la ventana debe seguir PENDING")
	assert.Empty(t, store.consumptions["c4"].InvoiceID)
}

// El fin de ventana es inclusivo: un consumo a las 12:30 del último día entra.
func TestClosePeriod_FinDeVentanaInclusivo(t *testing.T) {
	uc, store := newClosePeriodFixture()
	addConsumption(store, "c1", 15, "40.00", entity.ConsumptionPending)

	out, err := uc.ClosePeriod(context.Background(), testOperatorID, dto.ClosePeriodRequest{
		AgreementID: testAgreementID,
		Start:       "2026-03-15",
		End:         "2026-03-15",
	})
	require.NoError(t, err)
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("40.00")))
}

// Ventana sin pendientes: jamás se emite factura en cero.
func TestClosePeriod_VentanaVaciaNoEmiteFactura(t *testing.T) {
	uc, store := newClosePeriodFixture()
	addConsumption(store, "c1", 5, "100.00", entity.ConsumptionInvoiced)

	out, err := uc.ClosePeriod(context.Background(), testOperatorID, dto.ClosePeriodRequest{
		AgreementID: testAgreementID,
		Start:       "2026-03-01",
		End:         "2026-03-30",
	})
	require.ErrorIs(t, err, domain.ErrNoPendingConsumption)
	assert.Nil(t, out)
	assert.Empty(t, store.invoices, "no debe persistirse ninguna factura")
}

// Vencimiento: dueDate = issueDate + 5 días, ignorando el dueDay del convenio.
func TestClosePeriod_VencimientoCincoDias(t *testing.T) {
	uc, store := newClosePeriodFixture()
	addConsumption(store, "c1", 5, "100.00", entity.ConsumptionPending)

	out, err := uc.ClosePeriod(context.Background(), testOperatorID, dto.ClosePeriodRequest{
		AgreementID: testAgreementID,
		Start:       "2026-03-01",
		End:         "2026-03-30",
	})
	require.NoError(t, err)

	issue, err := time.Parse("2006-01-02", out.IssueDate)
	require.NoError(t, err)
	due, err := time.Parse("2006-01-02", out.DueDate)
	require.NoError(t, err)
	assert.Equal(t, issue.AddDate(0, 0, 5), due)
}

// Convenio inexistente → ErrAgreementNotFound, sin tocar el storage.
func TestClosePeriod_ConvenioInexistente(t *testing.T) {
	uc, store := newClosePeriodFixture()

	_, err := uc.ClosePeriod(context.Background(), testOperatorID, dto.ClosePeriodRequest{
		AgreementID: "no-existe",
		Start:       "2026-03-01",
		End:         "2026-03-30",
	})
	require.ErrorIs(t, err, domain.ErrAgreementNotFound)
	assert.Empty(t, store.invoices)
}

// Entradas inválidas: fechas mal formadas o invertidas.
func TestClosePeriod_EntradasInvalidas(t *testing.T) {
	uc, _ := newClosePeriodFixture()
	ctx := context.Background()

	cases := []dto.ClosePeriodRequest{
		{AgreementID: "", Start: "2026-03-01", End: "2026-03-30"},
		{AgreementID: testAgreementID, Start: "01/03/2026", End: "2026-03-30"},
		{AgreementID: testAgreementID, Start: "2026-03-01", End: "no-es-fecha"},
		{AgreementID: testAgreementID, Start: "2026-03-30", End: "2026-03-01"},
	}
	for _, in := range cases {
		_, err := uc.ClosePeriod(ctx, testOperatorID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "input %+v", in)
	}
}

// Atomicidad: si el marcado de consumos falla después de insertar la factura,
// el rollback deja todo como estaba — ni factura ni consumos mutados.
func TestClosePeriod_FalloPosteriorRevierteTodo(t *testing.T) {
	uc, store := newClosePeriodFixture()
	addConsumption(store, "c1", 5, "100.00", entity.ConsumptionPending)
	store.failMarkInvoiced = true

	_, err := uc.ClosePeriod(context.Background(), testOperatorID, dto.ClosePeriodRequest{
		AgreementID: testAgreementID,
		Start:       "2026-03-01",
		End:         "2026-03-30",
	})
	require.Error(t, err)
	assert.Empty(t, store.invoices, "la factura insertada debe revertirse")
	assert.Equal(t, entity.ConsumptionPending, store.consumptions["c1"].Status)
}

// Segundo cierre sobre ventana solapada: solo factura lo que quedó PENDING
// después del primero. Nunca se factura dos veces el mismo consumo.
func TestClosePeriod_CierresSucesivosNoRefacturan(t *testing.T) {
	uc, store := newClosePeriodFixture()
	addConsumption(store, "c1", 5, "100.00", entity.ConsumptionPending)
	addConsumption(store, "c2", 10, "200.00", entity.ConsumptionPending)

	in := dto.ClosePeriodRequest{
		AgreementID: testAgreementID,
		Start:       "2026-03-01",
		End:         "2026-03-30",
	}
	first, err := uc.ClosePeriod(context.Background(), testOperatorID, in)
	require.NoError(t, err)
	assert.True(t, first.TotalAmount.Equal(decimal.RequireFromString("300.00")))

	// Llega un consumo nuevo dentro de la misma ventana.
	addConsumption(store, "c3", 12, "50.00", entity.ConsumptionPending)

	second, err := uc.ClosePeriod(context.Background(), testOperatorID, in)
	require.NoError(t, err)
	assert.True(t, second.TotalAmount.Equal(decimal.RequireFromString("50.00")),
		"el segundo cierre solo debe facturar el consumo nuevo, fue %s", second.TotalAmount)

	assert.Equal(t, first.ID, store.consumptions["c1"].InvoiceID)
	assert.Equal(t, second.ID, store.consumptions["c3"].InvoiceID)
}

// ListInvoices filtra por convenio.
func TestListInvoices_FiltraPorConvenio(t *testing.T) {
	uc, store := newClosePeriodFixture()
	store.invoices = append(store.invoices,
		&entity.Invoice{ID: "f1", AgreementID: testAgreementID, TotalAmount: decimal.NewFromInt(100)},
		&entity.Invoice{ID: "f2", AgreementID: "otro", TotalAmount: decimal.NewFromInt(200)},
	)

	out, err := uc.ListInvoices(context.Background(), testAgreementID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "f1", out[0].ID)

	all, err := uc.ListInvoices(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
