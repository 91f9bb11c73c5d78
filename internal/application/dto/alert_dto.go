package dto

import "github.com/jhoicas/stock-alerts-api/internal/domain/entity"

// SupplierDTO datos de contacto del proveedor de un producto en alerta.
type SupplierDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
}

// LowStockAlertDTO alerta de stock bajo para un producto en una bodega.
type LowStockAlertDTO struct {
	ProductID         string       `json:"product_id"`
	ProductName       string       `json:"product_name"`
	SKU               string       `json:"sku"`
	WarehouseID       string       `json:"warehouse_id"`
	WarehouseName     string       `json:"warehouse_name"`
	CurrentStock      int64        `json:"current_stock"`
	Threshold         int64        `json:"threshold"`
	DaysUntilStockout int64        `json:"days_until_stockout"`
	Supplier          *SupplierDTO `json:"supplier"` // null si no hay proveedor
}

// LowStockAlertsResponse respuesta de GET /api/companies/{company_id}/alerts/low-stock.
type LowStockAlertsResponse struct {
	Alerts      []LowStockAlertDTO `json:"alerts"`
	TotalAlerts int                `json:"total_alerts"`
}

// NewLowStockAlertsResponse convierte las entidades en la respuesta HTTP.
// Alerts nunca es nil para que se serialice como [] y no como null.
func NewLowStockAlertsResponse(alerts []entity.LowStockAlert) *LowStockAlertsResponse {
	out := make([]LowStockAlertDTO, 0, len(alerts))
	for _, a := range alerts {
		item := LowStockAlertDTO{
			ProductID:         a.ProductID,
			ProductName:       a.ProductName,
			SKU:               a.SKU,
			WarehouseID:       a.WarehouseID,
			WarehouseName:     a.WarehouseName,
			CurrentStock:      a.CurrentStock,
			Threshold:         a.Threshold,
			DaysUntilStockout: a.DaysUntilStockout,
		}
		if a.Supplier != nil {
			item.Supplier = &SupplierDTO{
				ID:           a.Supplier.ID,
				Name:         a.Supplier.Name,
				ContactEmail: a.Supplier.ContactEmail,
			}
		}
		out = append(out, item)
	}
	return &LowStockAlertsResponse{Alerts: out, TotalAlerts: len(out)}
}
