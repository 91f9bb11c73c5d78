package entity

// DefaultStockThreshold umbral aplicado cuando el tipo de producto no tiene fila en stock_thresholds.
const DefaultStockThreshold int64 = 10

// StockThreshold umbral de stock bajo por tipo de producto (a lo sumo uno por tipo).
type StockThreshold struct {
	ProductType string
	Threshold   int64
}
