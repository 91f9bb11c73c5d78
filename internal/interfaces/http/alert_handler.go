package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-alerts-api/internal/application/alerts"
	"github.com/jhoicas/stock-alerts-api/internal/application/dto"
	"github.com/jhoicas/stock-alerts-api/internal/domain"
	"github.com/jhoicas/stock-alerts-api/pkg/logger"
)

// Mensajes públicos de error; el detalle solo va al log.
const (
	MsgCompanyNotFound = "Company not found"
	MsgServerError     = "Server error"
)

// AlertHandler maneja las peticiones HTTP de alertas de stock bajo.
type AlertHandler struct {
	uc  *alerts.LowStockUseCase
	log *logger.Logger
}

// NewAlertHandler construye el handler inyectando el caso de uso.
func NewAlertHandler(uc *alerts.LowStockUseCase, log *logger.Logger) *AlertHandler {
	return &AlertHandler{uc: uc, log: log}
}

// GetLowStockAlerts godoc
// @Summary      Alertas de stock bajo de una empresa
// @Description  Productos de las bodegas de la empresa con stock por debajo del umbral de su tipo
// @Description  (10 por defecto) y con ventas en los últimos 30 días, con días estimados hasta quiebre.
// @Tags         alerts
// @Produce      json
// @Param        company_id  path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.LowStockAlertsResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/alerts/low-stock [get]
func (h *AlertHandler) GetLowStockAlerts(c *fiber.Ctx) error {
	companyID := c.Params("company_id")
	out, err := h.uc.GetLowStockAlerts(c.UserContext(), companyID)
	if err != nil {
		return h.fail(c, companyID, err)
	}
	return c.JSON(out)
}

// GetLowStockReportPDF godoc
// @Summary      Reporte PDF de alertas de stock bajo
// @Tags         alerts
// @Produce      application/pdf
// @Param        company_id  path  string  true  "ID de la empresa"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/companies/{company_id}/alerts/low-stock/pdf [get]
func (h *AlertHandler) GetLowStockReportPDF(c *fiber.Ctx) error {
	companyID := c.Params("company_id")
	doc, err := h.uc.GetLowStockReportPDF(c.UserContext(), companyID)
	if err != nil {
		return h.fail(c, companyID, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="low-stock-`+companyID+`.pdf"`)
	return c.Send(doc)
}

// fail traduce errores del caso de uso: empresa inexistente → 404 (esperado, sin log de error);
// cualquier otro → 500 opaco con el detalle en el log.
func (h *AlertHandler) fail(c *fiber.Ctx, companyID string, err error) error {
	if errors.Is(err, domain.ErrCompanyNotFound) {
		h.log.Debug().Str("company_id", companyID).Msg("empresa no encontrada")
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: MsgCompanyNotFound})
	}
	h.log.Error().Err(err).
		Str("company_id", companyID).
		Str("request_id", GetRequestID(c)).
		Msg("calcular alertas de stock bajo")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: MsgServerError})
}
