package entity

// Supplier proveedor de productos; se asocia a productos vía product_suppliers.
type Supplier struct {
	ID           string
	Name         string
	ContactEmail string
}

// ProductSupplier relación producto ↔ proveedor.
type ProductSupplier struct {
	ProductID  string
	SupplierID string
}
