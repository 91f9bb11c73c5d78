package repository

import (
	"context"

	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
)

// InventoryJoinedRow fila de inventario unida a producto, bodega, proveedor (opcional)
// y umbral del tipo de producto (opcional).
type InventoryJoinedRow struct {
	Product      entity.Product
	Warehouse    entity.Warehouse
	CurrentStock int64
	Supplier     *entity.Supplier // nil si ningún proveedor está asociado al producto
	Threshold    *int64           // nil si el tipo de producto no tiene umbral
}

// InventoryLevelRepository define el puerto para consultar stock por bodega+producto (DIP).
type InventoryLevelRepository interface {
	// ListJoinedByWarehouses devuelve el inventario de las bodegas indicadas con sus datos asociados.
	// Cuando un producto tiene varios proveedores se toma el de menor ID.
	ListJoinedByWarehouses(ctx context.Context, warehouseIDs []string) ([]InventoryJoinedRow, error)
}
