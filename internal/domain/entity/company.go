package entity

// Company representa una organización/tenant del sistema.
// Su existencia es precondición para cualquier cálculo de alertas.
type Company struct {
	ID   string
	Name string
}
