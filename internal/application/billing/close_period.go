package billing

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

// Días de gracia entre emisión y vencimiento. El dueDay configurado en el
// convenio es informativo para el ciclo recurrente; el cierre no lo consulta.
const dueDateGraceDays = 5

const dateLayout = "2006-01-02"

// ClosePeriodUseCase convierte los consumos PENDING de un convenio dentro de
// una ventana de fechas en una factura inmutable, todo en una transacción.
type ClosePeriodUseCase struct {
	txRunner      TxRunner
	agreementRepo repository.AgreementRepository
	invoiceRepo   repository.InvoiceRepository
}

// NewClosePeriodUseCase construye el caso de uso.
func NewClosePeriodUseCase(txRunner TxRunner, agreementRepo repository.AgreementRepository, invoiceRepo repository.InvoiceRepository) *ClosePeriodUseCase {
	return &ClosePeriodUseCase{txRunner: txRunner, agreementRepo: agreementRepo, invoiceRepo: invoiceRepo}
}

// ClosePeriod cierra el período [start, end] del convenio:
//
//  1. Selecciona con lock los consumos PENDING con timestamp dentro de la
//     ventana (el fin es inclusivo hasta las 23:59:59 del día).
//  2. Selección vacía → rollback y ErrNoPendingConsumption: jamás se emite
//     una factura en cero.
//  3. Total = suma exacta de los montos seleccionados.
//  4. Emite la factura OPEN con issueDate = ahora y dueDate = ahora + 5 días.
//  5. Marca los consumos seleccionados como INVOICED apuntando a la factura.
//
// Cualquier fallo posterior al paso 1 revierte todo: ni factura persistida ni
// consumos mutados. Dos cierres concurrentes sobre ventanas solapadas se
// serializan por los locks de fila; el segundo no ve los consumos que el
// primero ya facturó.
func (uc *ClosePeriodUseCase) ClosePeriod(ctx context.Context, operatorID string, in dto.ClosePeriodRequest) (*dto.InvoiceResponse, error) {
	if in.AgreementID == "" {
		return nil, domain.ErrInvalidInput
	}
	periodStart, err := time.ParseInLocation(dateLayout, in.Start, time.Local)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	periodEnd, err := time.ParseInLocation(dateLayout, in.End, time.Local)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if periodStart.After(periodEnd) {
		return nil, domain.ErrInvalidInput
	}

	agreement, err := uc.agreementRepo.GetByID(ctx, in.AgreementID)
	if err != nil {
		return nil, err
	}
	if agreement == nil {
		return nil, domain.ErrAgreementNotFound
	}

	// Los timestamps llevan hora: la ventana cierra al final del último día.
	windowEnd := time.Date(periodEnd.Year(), periodEnd.Month(), periodEnd.Day(), 23, 59, 59, 0, periodEnd.Location())

	var invoice *entity.Invoice
	err = uc.txRunner.RunBilling(ctx, func(
		consumptionRepo repository.ConsumptionRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		pending, err := consumptionRepo.ListPendingForUpdate(ctx, in.AgreementID, periodStart, windowEnd)
		if err != nil {
			return fmt.Errorf("seleccionar consumos pendientes: %w", err)
		}
		if len(pending) == 0 {
			return domain.ErrNoPendingConsumption
		}

		total := decimal.Zero
		ids := make([]string, 0, len(pending))
		for _, c := range pending {
			total = total.Add(c.Amount)
			ids = append(ids, c.ID)
		}

		now := time.Now()
		invoice = &entity.Invoice{
			ID:          uuid.New().String(),
			AgreementID: in.AgreementID,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			IssueDate:   now,
			DueDate:     now.AddDate(0, 0, dueDateGraceDays),
			TotalAmount: total,
			Status:      entity.InvoiceOpen,
		}
		if err := invoiceRepo.Create(ctx, invoice); err != nil {
			return fmt.Errorf("insertar factura: %w", err)
		}

		affected, err := consumptionRepo.MarkInvoiced(ctx, ids, invoice.ID)
		if err != nil {
			return fmt.Errorf("marcar consumos facturados: %w", err)
		}
		// Las filas están bloqueadas desde la selección; una discrepancia acá
		// significaría doble facturación y obliga al rollback.
		if affected != int64(len(ids)) {
			return fmt.Errorf("cierre inconsistente: %d consumos seleccionados, %d marcados", len(ids), affected)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.InvoicesClosed.Inc()
	log.Info().
		Str("operator_id", operatorID).
		Str("agreement_id", in.AgreementID).
		Str("invoice_id", invoice.ID).
		Str("total", invoice.TotalAmount.StringFixed(2)).
		Msg("período cerrado")

	return toInvoiceResponse(invoice), nil
}

// ListInvoices lista las facturas, filtradas por convenio cuando agreementID no es vacío.
func (uc *ClosePeriodUseCase) ListInvoices(ctx context.Context, agreementID string) ([]dto.InvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.List(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, *toInvoiceResponse(inv))
	}
	return out, nil
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:          inv.ID,
		AgreementID: inv.AgreementID,
		PeriodStart: inv.PeriodStart.Format(dateLayout),
		PeriodEnd:   inv.PeriodEnd.Format(dateLayout),
		IssueDate:   inv.IssueDate.Format(dateLayout),
		DueDate:     inv.DueDate.Format(dateLayout),
		TotalAmount: inv.TotalAmount,
		Status:      inv.Status,
	}
}
