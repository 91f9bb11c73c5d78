package alerts

import (
	"context"
	"time"

	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
	"github.com/jhoicas/stock-alerts-api/internal/domain/repository"
)

// Store agrupa los repositorios de lectura atados a una misma sesión de datos.
type Store struct {
	Companies  repository.CompanyRepository
	Warehouses repository.WarehouseRepository
	Sales      repository.SaleRepository
	Inventory  repository.InventoryLevelRepository
}

// ReadRunner ejecuta fn dentro de una sesión de solo lectura (conexión adquirida del pool)
// y la libera en todas las rutas de salida, incluidas las de error.
type ReadRunner interface {
	RunReadOnly(ctx context.Context, fn func(store Store) error) error
}

// ActiveProductCache cachea el conjunto de productos con ventas recientes, indexado por
// la cota inferior de la ventana. Es opcional: un cache nil desactiva la caché.
type ActiveProductCache interface {
	GetActiveProducts(ctx context.Context, since time.Time) (ids []string, found bool, err error)
	SetActiveProducts(ctx context.Context, since time.Time, ids []string) error
}

// ReportPDFGenerator renderiza la lista de alertas como documento PDF.
type ReportPDFGenerator interface {
	GenerateLowStockPDF(ctx context.Context, company *entity.Company, alerts []entity.LowStockAlert, generatedAt time.Time) ([]byte, error)
}
