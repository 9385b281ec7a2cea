// Package pos contiene los casos de uso del punto de venta: ventas y caja.
package pos

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

// SaleUseCase ventas del PDV. Completar una venta pagada con AGREEMENT
// registra el consumo contra el convenio en la misma transacción que el
// descuento de stock (el productor del contrato PDV → libro de consumos).
type SaleUseCase struct {
	txRunner      TxRunner
	saleRepo      repository.SaleRepository
	agreementRepo repository.AgreementRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, agreementRepo repository.AgreementRepository) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, saleRepo: saleRepo, agreementRepo: agreementRepo}
}

// List lista las ventas ordenadas por timestamp descendente.
func (uc *SaleUseCase) List(ctx context.Context) ([]dto.SaleResponse, error) {
	sales, err := uc.saleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, *toSaleResponse(s))
	}
	return out, nil
}

// Save guarda una venta (upsert por ID: el PDV primero guarda la comanda
// abierta y después la completa con el método de pago). El stock se descuenta
// y el consumo de convenio se registra solo en la transición a COMPLETED,
// nunca en re-guardados de una venta ya completada.
func (uc *SaleUseCase) Save(ctx context.Context, operatorID string, in dto.SaveSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.SaleOpen
	}
	if status != entity.SaleOpen && status != entity.SaleCompleted {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentMethod == entity.PaymentAgreement {
		if in.AgreementID == "" {
			return nil, domain.ErrInvalidInput
		}
		agreement, err := uc.agreementRepo.GetByID(ctx, in.AgreementID)
		if err != nil {
			return nil, err
		}
		if agreement == nil {
			return nil, domain.ErrAgreementNotFound
		}
	}

	sale := toSaleEntity(operatorID, status, in)
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if sale.Timestamp.IsZero() {
		sale.Timestamp = time.Now()
	}

	// Transición de estado: solo al pasar a COMPLETED se toca stock/consumo.
	previous, err := uc.saleRepo.GetByID(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	if previous != nil && previous.Status != entity.SaleOpen {
		return nil, domain.ErrInvalidState
	}
	completing := status == entity.SaleCompleted

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		consumptionRepo repository.ConsumptionRepository,
	) error {
		if err := saleRepo.Upsert(ctx, sale); err != nil {
			return fmt.Errorf("guardar venta: %w", err)
		}
		if !completing {
			return nil
		}
		for _, item := range sale.Items {
			if item.Quantity.GreaterThan(decimal.Zero) {
				if err := productRepo.AdjustStock(ctx, item.ProductID, item.Quantity.Neg()); err != nil {
					return fmt.Errorf("descontar stock: %w", err)
				}
			}
		}
		if sale.PaymentMethod == entity.PaymentAgreement && sale.AgreementID != "" {
			// SaleID como clave de idempotencia: un reintento no duplica el consumo.
			_, err := consumptionRepo.Create(ctx, &entity.Consumption{
				ID:          uuid.New().String(),
				AgreementID: sale.AgreementID,
				EmployeeID:  sale.EmployeeID,
				SaleID:      sale.ID,
				Description: fmt.Sprintf("PDV Pedido %s", sale.OrderNumber),
				Amount:      sale.Total,
				Quantity:    1,
				Timestamp:   sale.Timestamp,
				Status:      entity.ConsumptionPending,
			})
			if err != nil {
				return fmt.Errorf("registrar consumo de convenio: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if completing {
		metrics.SalesCompleted.Inc()
		log.Info().Str("operator_id", operatorID).Str("sale_id", sale.ID).Msg("venta completada")
	}
	return toSaleResponse(sale), nil
}

// Cancel cancela una venta. Si estaba COMPLETED devuelve el stock de cada
// ítem en la misma transacción que el cambio de estado.
func (uc *SaleUseCase) Cancel(ctx context.Context, operatorID, id string) error {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if sale.Status == entity.SaleCancelled {
		return nil
	}

	restock := sale.Status == entity.SaleCompleted
	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		_ repository.ConsumptionRepository,
	) error {
		if restock {
			for _, item := range sale.Items {
				if err := productRepo.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
					return fmt.Errorf("devolver stock: %w", err)
				}
			}
		}
		return saleRepo.UpdateStatus(ctx, id, entity.SaleCancelled)
	})
	if err != nil {
		return err
	}
	log.Info().Str("operator_id", operatorID).Str("sale_id", id).Msg("venta cancelada")
	return nil
}

func toSaleEntity(operatorID, status string, in dto.SaveSaleRequest) *entity.Sale {
	items := make([]entity.SaleItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.SaleItem{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			Total:     it.Total,
		})
	}
	return &entity.Sale{
		ID:            in.ID,
		OrderNumber:   in.OrderNumber,
		CustomerName:  in.CustomerName,
		Items:         items,
		Subtotal:      in.Subtotal,
		Discount:      in.Discount,
		Total:         in.Total,
		PaymentMethod: in.PaymentMethod,
		Timestamp:     in.Timestamp,
		Status:        status,
		OperatorID:    operatorID,
		AgreementID:   in.AgreementID,
		EmployeeID:    in.EmployeeID,
	}
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemDTO, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemDTO{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			Total:     it.Total,
		})
	}
	return &dto.SaleResponse{
		ID:            s.ID,
		OrderNumber:   s.OrderNumber,
		CustomerName:  s.CustomerName,
		Items:         items,
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		Timestamp:     s.Timestamp,
		Status:        s.Status,
		OperatorID:    s.OperatorID,
		AgreementID:   s.AgreementID,
		EmployeeID:    s.EmployeeID,
	}
}
