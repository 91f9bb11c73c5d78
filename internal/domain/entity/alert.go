package entity

// LowStockAlert alerta derivada (no persistida) para un par producto+bodega.
// Solo existe si CurrentStock < Threshold y el producto vendió en la ventana reciente.
type LowStockAlert struct {
	ProductID         string
	ProductName       string
	SKU               string
	WarehouseID       string
	WarehouseName     string
	CurrentStock      int64
	Threshold         int64
	DaysUntilStockout int64
	Supplier          *Supplier // nil = sin proveedor asociado
}
