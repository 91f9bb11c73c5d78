package alerts

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
)

// AlertBuilder une el inventario con sus datos asociados, aplica los filtros de elegibilidad
// y umbral, y calcula el horizonte de quiebre de stock de cada alerta.
type AlertBuilder struct {
	windowDays       int
	defaultThreshold int64
}

// NewAlertBuilder construye el builder con la ventana (días) y el umbral por defecto.
func NewAlertBuilder(windowDays int, defaultThreshold int64) *AlertBuilder {
	return &AlertBuilder{windowDays: windowDays, defaultThreshold: defaultThreshold}
}

// Build devuelve las alertas ordenadas por días hasta quiebre (asc), luego producto y bodega.
// Cualquier error de acceso a datos aborta el cálculo completo.
func (b *AlertBuilder) Build(ctx context.Context, store Store, el *Eligibility) ([]entity.LowStockAlert, error) {
	if el.IsEmpty() || len(el.ActiveProductIDs) == 0 {
		return []entity.LowStockAlert{}, nil
	}

	// 1. Inventario unido a producto, bodega, proveedor y umbral
	rows, err := store.Inventory.ListJoinedByWarehouses(ctx, el.WarehouseIDs)
	if err != nil {
		return nil, fmt.Errorf("builder: inventario: %w", err)
	}

	// 2-3. Filtro de elegibilidad y de umbral
	alerts := make([]entity.LowStockAlert, 0)
	productIDs := make([]string, 0)
	seen := make(map[string]struct{})
	for _, row := range rows {
		if !el.IsActive(row.Product.ID) {
			continue
		}
		threshold := b.defaultThreshold
		if row.Threshold != nil {
			threshold = *row.Threshold
		}
		if row.CurrentStock >= threshold {
			continue
		}

		var supplier *entity.Supplier
		if row.Supplier != nil {
			s := *row.Supplier
			supplier = &s
		}
		alerts = append(alerts, entity.LowStockAlert{
			ProductID:     row.Product.ID,
			ProductName:   row.Product.Name,
			SKU:           row.Product.SKU,
			WarehouseID:   row.Warehouse.ID,
			WarehouseName: row.Warehouse.Name,
			CurrentStock:  row.CurrentStock,
			Threshold:     threshold,
			Supplier:      supplier,
		})
		if _, ok := seen[row.Product.ID]; !ok {
			seen[row.Product.ID] = struct{}{}
			productIDs = append(productIDs, row.Product.ID)
		}
	}
	if len(alerts) == 0 {
		return alerts, nil
	}

	// 4. Velocidad de venta: una sola consulta agrupada para todos los productos
	totals, err := store.Sales.SumQuantityByProducts(ctx, productIDs, el.Since)
	if err != nil {
		return nil, fmt.Errorf("builder: ventas por producto: %w", err)
	}
	for i := range alerts {
		alerts[i].DaysUntilStockout = DaysUntilStockout(alerts[i].CurrentStock, totals[alerts[i].ProductID], b.windowDays)
	}

	// 5. Orden determinista: los quiebres más cercanos primero
	sort.SliceStable(alerts, func(i, j int) bool {
		a, c := alerts[i], alerts[j]
		if a.DaysUntilStockout != c.DaysUntilStockout {
			return a.DaysUntilStockout < c.DaysUntilStockout
		}
		if a.ProductID != c.ProductID {
			return a.ProductID < c.ProductID
		}
		return a.WarehouseID < c.WarehouseID
	})
	return alerts, nil
}
