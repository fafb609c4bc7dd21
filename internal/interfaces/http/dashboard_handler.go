package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/concretera-erp/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve ventas, operación y finanzas de la ventana pedida.
// GET /api/dashboard/summary?from=YYYY-MM-DD&to=YYYY-MM-DD
//
// Sin parámetros usa los últimos 30 días. Las series vienen por día ISO en la zona
// configurada (METRICS_TIMEZONE).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.Context(), GetOrganizationID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
