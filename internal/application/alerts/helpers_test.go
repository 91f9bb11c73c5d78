package alerts_test

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/stock-alerts-api/internal/application/alerts"
	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
	"github.com/jhoicas/stock-alerts-api/internal/infrastructure/memory"
)

var (
	fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	since    = alerts.WindowStart(fixedNow, alerts.DefaultWindowDays)
)

func daysAgo(n int) time.Time { return fixedNow.AddDate(0, 0, -n) }

// scenarioStore empresa C1, bodega W1, producto P1 (tipo T, umbral 5, stock 3),
// 10 unidades vendidas hace 5 días, proveedor S1.
func scenarioStore() *memory.Store {
	return memory.NewStore().
		AddCompany(entity.Company{ID: "C1", Name: "Acme Retail"}).
		AddWarehouse(entity.Warehouse{ID: "W1", CompanyID: "C1", Name: "Main"}).
		AddProduct(entity.Product{ID: "P1", Name: "Widget", SKU: "WID-1", Type: "T"}).
		SetThreshold("T", 5).
		SetStock("P1", "W1", 3).
		AddSale(entity.Sale{ProductID: "P1", Quantity: 10, SaleDate: daysAgo(5)}).
		AddSupplier(entity.Supplier{ID: "S1", Name: "Acme", ContactEmail: "a@x.com"}).
		LinkSupplier("P1", "S1")
}

func newUseCase(runner alerts.ReadRunner, cache alerts.ActiveProductCache) *alerts.LowStockUseCase {
	return alerts.NewLowStockUseCase(runner, cache, nil, nil, alerts.Config{
		Now: func() time.Time { return fixedNow },
	})
}

// fakeCache caché en memoria con contadores y error configurable.
type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]string
	getErr  error
	setErr  error
	gets    int
	sets    int
	lastSet []string
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]string{}} }

func (f *fakeCache) GetActiveProducts(_ context.Context, since time.Time) ([]string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	ids, ok := f.data[since.Format("2006-01-02")]
	return ids, ok, nil
}

func (f *fakeCache) SetActiveProducts(_ context.Context, since time.Time, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.lastSet = ids
	f.data[since.Format("2006-01-02")] = ids
	return nil
}
