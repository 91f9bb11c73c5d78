package entity

// Product representa un producto o SKU del inventario.
// Type es la clave de búsqueda del umbral de stock (StockThreshold).
type Product struct {
	ID   string
	Name string
	SKU  string
	Type string
}
