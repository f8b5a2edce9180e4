package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenix-api/internal/application/analytics"
)

// DashboardHandler maneja las peticiones HTTP del tablero operativo y el
// reporte de inventario.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Tablero operativo
// @Description  Valuación de inventario, stock bajo, órdenes abiertas,
// @Description  facturas pendientes y métricas del pipeline.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetStockReport godoc
// @Summary      Descargar reporte de inventario (xlsx)
// @Tags         dashboard
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stock-report [get]
func (h *DashboardHandler) GetStockReport(c *fiber.Ctx) error {
	data, err := h.uc.GetStockReport(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventario.xlsx"`)
	return c.Send(data)
}
