package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jsresto/convenios-api/internal/application/dto"
	"github.com/jsresto/convenios-api/internal/application/pos"
	"github.com/jsresto/convenios-api/internal/domain"
)

// CashierHandler maneja sesiones y movimientos de caja (protegido).
type CashierHandler struct {
	uc *pos.CashierUseCase
}

// NewCashierHandler construye el handler.
func NewCashierHandler(uc *pos.CashierUseCase) *CashierHandler {
	return &CashierHandler{uc: uc}
}

// ListSessions godoc
// @Summary      Listar sesiones de caja
// @Tags         cashier
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CashSessionResponse
// @Router       /api/cashier/sessions [get]
func (h *CashierHandler) ListSessions(c *fiber.Ctx) error {
	out, err := h.uc.ListSessions(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Current godoc
// @Summary      Sesión de caja abierta (null si no hay)
// @Tags         cashier
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CashSessionResponse
// @Router       /api/cashier/current [get]
func (h *CashierHandler) Current(c *fiber.Ctx) error {
	out, err := h.uc.Current(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Open godoc
// @Summary      Abrir sesión de caja
// @Tags         cashier
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenSessionRequest  true  "Saldo inicial"
// @Success      201   {object}  dto.CashSessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cashier/open [post]
func (h *CashierHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Open(c.UserContext(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Close godoc
// @Summary      Cerrar sesión de caja
// @Tags         cashier
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CloseSessionRequest  true  "Sesión y saldo contado"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cashier/close [post]
func (h *CashierHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Close(c.UserContext(), GetUserID(c), in); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// ListMovements godoc
// @Summary      Listar movimientos de una sesión
// @Tags         cashier
// @Security     Bearer
// @Produce      json
// @Param        sessionId  query  string  true  "ID de la sesión"
// @Success      200  {array}  dto.CashMovementResponse
// @Router       /api/cashier/movements [get]
func (h *CashierHandler) ListMovements(c *fiber.Ctx) error {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sessionId es requerido"})
	}
	out, err := h.uc.ListMovements(c.UserContext(), sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AddMovement godoc
// @Summary      Registrar sangría o refuerzo
// @Tags         cashier
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CashMovementRequest  true  "Datos del movimiento"
// @Success      201   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cashier/movements [post]
func (h *CashierHandler) AddMovement(c *fiber.Ctx) error {
	var in dto.CashMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.AddMovement(c.UserContext(), GetUserID(c), in); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNoOpenCashSession) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_OPEN_SESSION", Message: "no hay sesión de caja abierta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{Success: true})
}
