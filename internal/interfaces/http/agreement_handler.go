package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jsresto/convenios-api/internal/application/dto"
	"github.com/jsresto/convenios-api/internal/application/usecase"
	"github.com/jsresto/convenios-api/internal/domain"
)

// AgreementHandler maneja las peticiones HTTP para convenios (protegido).
type AgreementHandler struct {
	uc *usecase.AgreementUseCase
}

// NewAgreementHandler construye el handler.
func NewAgreementHandler(uc *usecase.AgreementUseCase) *AgreementHandler {
	return &AgreementHandler{uc: uc}
}

// List godoc
// @Summary      Listar convenios
// @Tags         agreements
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AgreementResponse
// @Router       /api/agreements [get]
func (h *AgreementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear o reemplazar convenio
// @Tags         agreements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertAgreementRequest  true  "Datos del convenio"
// @Success      200   {object}  dto.AgreementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/agreements [post]
func (h *AgreementHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertAgreementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Upsert(c.UserContext(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
