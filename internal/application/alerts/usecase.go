// Package alerts contiene el cálculo de alertas de stock bajo por empresa:
// resolución de elegibilidad (bodegas + productos con ventas recientes) y
// construcción de alertas con umbral por tipo de producto y horizonte de quiebre.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/stock-alerts-api/internal/application/dto"
	"github.com/jhoicas/stock-alerts-api/internal/domain"
	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
	"github.com/jhoicas/stock-alerts-api/pkg/logger"
)

const instrumentationName = "github.com/jhoicas/stock-alerts-api/internal/application/alerts"

// Valores por defecto de la ventana de ventas y del umbral.
const (
	DefaultWindowDays       = 30
	DefaultThreshold  int64 = entity.DefaultStockThreshold
)

// Config parámetros del cálculo de alertas.
type Config struct {
	WindowDays       int              // ventana de ventas en días (0 = 30)
	DefaultThreshold int64            // umbral si el tipo no tiene fila (0 = 10)
	Now              func() time.Time // reloj; nil = time.Now
}

// LowStockUseCase orquesta el pipeline por petición: Resolver → Builder, dentro de una
// única sesión de lectura que se libera siempre. No escribe datos.
type LowStockUseCase struct {
	runner    ReadRunner
	resolver  *EligibilityResolver
	builder   *AlertBuilder
	pdf       ReportPDFGenerator
	window    int
	now       func() time.Time
	tracer    trace.Tracer
	alertsCnt metric.Int64Counter
}

// NewLowStockUseCase construye el caso de uso. cache y pdf pueden ser nil.
func NewLowStockUseCase(
	runner ReadRunner,
	cache ActiveProductCache,
	pdf ReportPDFGenerator,
	log *logger.Logger,
	cfg Config,
) *LowStockUseCase {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = DefaultWindowDays
	}
	if cfg.DefaultThreshold <= 0 {
		cfg.DefaultThreshold = DefaultThreshold
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	meter := otel.Meter(instrumentationName)
	cnt, err := meter.Int64Counter("lowstock.alerts",
		metric.WithDescription("Alertas de stock bajo generadas"),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &LowStockUseCase{
		runner:    runner,
		resolver:  NewEligibilityResolver(cache, log),
		builder:   NewAlertBuilder(cfg.WindowDays, cfg.DefaultThreshold),
		pdf:       pdf,
		window:    cfg.WindowDays,
		now:       cfg.Now,
		tracer:    otel.Tracer(instrumentationName),
		alertsCnt: cnt,
	}
}

// WindowStart devuelve la cota inferior inclusiva de la ventana: hoy (fecha calendario) - days.
func WindowStart(now time.Time, days int) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -days)
}

// GetLowStockAlerts calcula las alertas de la empresa y las devuelve como respuesta HTTP.
// Devuelve domain.ErrCompanyNotFound si la empresa no existe.
func (uc *LowStockUseCase) GetLowStockAlerts(ctx context.Context, companyID string) (*dto.LowStockAlertsResponse, error) {
	_, list, err := uc.compute(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return dto.NewLowStockAlertsResponse(list), nil
}

// GetLowStockReportPDF calcula las alertas y las renderiza como PDF.
func (uc *LowStockUseCase) GetLowStockReportPDF(ctx context.Context, companyID string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("alerts: generador PDF no configurado")
	}
	company, list, err := uc.compute(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateLowStockPDF(ctx, company, list, uc.now())
}

func (uc *LowStockUseCase) compute(ctx context.Context, companyID string) (*entity.Company, []entity.LowStockAlert, error) {
	ctx, span := uc.tracer.Start(ctx, "LowStock.Compute",
		trace.WithAttributes(attribute.String("company.id", companyID)),
	)
	defer span.End()

	since := WindowStart(uc.now(), uc.window)

	var (
		company *entity.Company
		list    []entity.LowStockAlert
	)
	err := uc.runner.RunReadOnly(ctx, func(store Store) error {
		rctx, rspan := uc.tracer.Start(ctx, "LowStock.ResolveEligibility")
		el, err := uc.resolver.Resolve(rctx, store, companyID, since)
		rspan.End()
		if err != nil {
			return err
		}
		company = el.Company

		bctx, bspan := uc.tracer.Start(ctx, "LowStock.BuildAlerts",
			trace.WithAttributes(
				attribute.Int("warehouses", len(el.WarehouseIDs)),
				attribute.Int("active_products", len(el.ActiveProductIDs)),
			),
		)
		list, err = uc.builder.Build(bctx, store, el)
		bspan.End()
		return err
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return nil, nil, err
	}

	span.SetAttributes(attribute.Int("alerts.total", len(list)))
	if uc.alertsCnt != nil {
		uc.alertsCnt.Add(ctx, int64(len(list)))
	}
	return company, list, nil
}
