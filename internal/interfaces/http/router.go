package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-alerts-api/internal/application/alerts"
	"github.com/jhoicas/stock-alerts-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LowStock  *alerts.LowStockUseCase
	Logger    *logger.Logger
	DB        Pinger
	AppName   string
	JWTSecret string // vacío = rutas de alertas públicas
	JWTIssuer string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	health := NewHealthHandler(deps.AppName, deps.DB)
	app.Get("/health", health.Live)
	app.Get("/ready", health.Ready)

	api := app.Group("/api")

	// Alertas de stock bajo (solo lectura); protegidas por tenant si hay JWT_SECRET
	guard := TenantGuard(deps.JWTSecret, deps.JWTIssuer)
	alertHandler := NewAlertHandler(deps.LowStock, log)
	companies := api.Group("/companies")
	companies.Get("/:company_id/alerts/low-stock", guard, alertHandler.GetLowStockAlerts)
	companies.Get("/:company_id/alerts/low-stock/pdf", guard, alertHandler.GetLowStockReportPDF)
}
