package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jsresto/convenios-api/internal/application/dto"
	"github.com/jsresto/convenios-api/internal/application/forecast"
)

// ForecastHandler expone la proyección de ingresos por convenios.
type ForecastHandler struct {
	uc *forecast.ForecastUseCase
}

// NewForecastHandler construye el handler.
func NewForecastHandler(uc *forecast.ForecastUseCase) *ForecastHandler {
	return &ForecastHandler{uc: uc}
}

// Summary godoc
// @Summary      Proyección del mes en curso para todos los convenios activos
// @Tags         forecast
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ForecastSummaryDTO
// @Router       /api/forecast [get]
func (h *ForecastHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext(), time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
