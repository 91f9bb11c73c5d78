package entity

// InventoryLevel representa el stock actual de un producto en una bodega.
// Único por combinación producto+bodega.
type InventoryLevel struct {
	ProductID    string
	WarehouseID  string
	CurrentStock int64
}
