package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jsresto/convenios-api/internal/application/billing"
	"github.com/jsresto/convenios-api/internal/application/dto"
	"github.com/jsresto/convenios-api/internal/domain"
)

// InvoiceHandler maneja facturas de convenio y el cierre de período.
type InvoiceHandler struct {
	uc *billing.ClosePeriodUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.ClosePeriodUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// List godoc
// @Summary      Listar facturas de convenio
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        agreementId  query  string  false  "Filtrar por convenio"
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListInvoices(c.UserContext(), c.Query("agreementId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ClosePeriod godoc
// @Summary      Cerrar período de facturación de un convenio
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClosePeriodRequest  true  "Convenio y ventana de fechas"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices/close-period [post]
func (h *InvoiceHandler) ClosePeriod(c *fiber.Ctx) error {
	var in dto.ClosePeriodRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ClosePeriod(c.UserContext(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "agreementId, start y end (YYYY-MM-DD) son requeridos"})
		}
		if errors.Is(err, domain.ErrAgreementNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "convenio no encontrado"})
		}
		if errors.Is(err, domain.ErrNoPendingConsumption) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_PENDING_CONSUMPTION", Message: "sin consumos pendientes en el período"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
