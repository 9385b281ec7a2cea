package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jsresto/convenios-api/internal/application/dto"
	"github.com/jsresto/convenios-api/internal/application/ledger"
	"github.com/jsresto/convenios-api/internal/domain"
)

// ConsumptionHandler maneja el libro de consumos de convenio.
type ConsumptionHandler struct {
	uc *ledger.ConsumptionUseCase
}

// NewConsumptionHandler construye el handler.
func NewConsumptionHandler(uc *ledger.ConsumptionUseCase) *ConsumptionHandler {
	return &ConsumptionHandler{uc: uc}
}

// List godoc
// @Summary      Listar consumos
// @Tags         consumptions
// @Security     Bearer
// @Produce      json
// @Param        agreementId  query  string  false  "Filtrar por convenio"
// @Success      200  {array}  dto.ConsumptionResponse
// @Router       /api/consumptions [get]
func (h *ConsumptionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("agreementId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Record godoc
// @Summary      Registrar consumo manual
// @Tags         consumptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordConsumptionRequest  true  "Datos del consumo"
// @Success      201   {object}  dto.ConsumptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/consumptions [post]
func (h *ConsumptionHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Record(c.UserContext(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrAgreementNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "convenio no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DailyLaunch godoc
// @Summary      Lanzamiento diario de marmitas fijas
// @Tags         consumptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DailyLaunchRequest  true  "Convenio y cantidad"
// @Success      201   {object}  dto.ConsumptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/consumptions/daily [post]
func (h *ConsumptionHandler) DailyLaunch(c *fiber.Ctx) error {
	var in dto.DailyLaunchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.DailyLaunch(c.UserContext(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrAgreementNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "convenio no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidState) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "el convenio no es de marmitas fijas o no tiene precio configurado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Void godoc
// @Summary      Anular consumo pendiente
// @Tags         consumptions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del consumo"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/consumptions/{id} [delete]
func (h *ConsumptionHandler) Void(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Void(c.UserContext(), GetUserID(c), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "consumo no encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidState) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "solo se anulan consumos pendientes"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
