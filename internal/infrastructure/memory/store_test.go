package memory_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-alerts-api/internal/application/alerts"
	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
	"github.com/jhoicas/stock-alerts-api/internal/infrastructure/memory"
)

var now = time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

func TestStore_RunReadOnly_LiberaSesionConError(t *testing.T) {
	s := memory.NewStore()

	err := s.RunReadOnly(context.Background(), func(alerts.Store) error {
		return errors.New("fallo")
	})

	require.Error(t, err)
	acquired, released := s.Sessions()
	assert.Equal(t, 1, acquired)
	assert.Equal(t, 1, released)
}

func TestStore_FailOn_YRestablecer(t *testing.T) {
	s := memory.NewStore().AddCompany(entity.Company{ID: "C1", Name: "Acme"})
	boom := errors.New("boom")
	s.FailOn(memory.OpGetCompany, boom)

	err := s.RunReadOnly(context.Background(), func(st alerts.Store) error {
		_, err := st.Companies.GetByID(context.Background(), "C1")
		return err
	})
	assert.ErrorIs(t, err, boom)

	s.FailOn(memory.OpGetCompany, nil)
	err = s.RunReadOnly(context.Background(), func(st alerts.Store) error {
		c, err := st.Companies.GetByID(context.Background(), "C1")
		require.NotNil(t, c)
		return err
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, s.Calls(memory.OpGetCompany))
}

func TestStore_SetStock_Reemplaza(t *testing.T) {
	s := memory.NewStore().
		AddCompany(entity.Company{ID: "C1"}).
		AddWarehouse(entity.Warehouse{ID: "W1", CompanyID: "C1"}).
		AddProduct(entity.Product{ID: "P1", Type: "T"}).
		SetStock("P1", "W1", 3).
		SetStock("P1", "W1", 8)

	var rows int
	var stock int64
	err := s.RunReadOnly(context.Background(), func(st alerts.Store) error {
		list, err := st.Inventory.ListJoinedByWarehouses(context.Background(), []string{"W1"})
		rows = len(list)
		if rows > 0 {
			stock = list[0].CurrentStock
		}
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 1, rows)
	assert.Equal(t, int64(8), stock)
}

func TestStore_SumaSoloDentroDeLaVentana(t *testing.T) {
	since := alerts.WindowStart(now, 30)
	s := memory.NewStore().
		AddSale(entity.Sale{ProductID: "P1", Quantity: 4, SaleDate: now}).
		AddSale(entity.Sale{ProductID: "P1", Quantity: 6, SaleDate: since.Add(18 * time.Hour)}).
		AddSale(entity.Sale{ProductID: "P1", Quantity: 100, SaleDate: since.Add(-time.Hour)}).
		AddSale(entity.Sale{ProductID: "P2", Quantity: 7, SaleDate: now})

	var got map[string]int64
	err := s.RunReadOnly(context.Background(), func(st alerts.Store) error {
		totals, err := st.Sales.SumQuantityByProducts(context.Background(), []string{"P1"}, since)
		got = map[string]int64{}
		for k, v := range totals {
			got[k] = v.IntPart()
		}
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"P1": 10}, got)
}

func TestLoadFixtureFile(t *testing.T) {
	raw := `{
	  "companies": [{"id": "C1", "name": "Acme Retail"}],
	  "warehouses": [{"id": "W1", "company_id": "C1", "name": "Main"}],
	  "products": [{"id": "P1", "name": "Widget", "sku": "WID-1", "product_type": "T"}],
	  "inventory": [{"product_id": "P1", "warehouse_id": "W1", "current_stock": 3}],
	  "sales": [
	    {"product_id": "P1", "quantity": 10, "days_ago": 5},
	    {"product_id": "P1", "quantity": 2, "sale_date": "2025-01-01"}
	  ],
	  "suppliers": [{"id": "S1", "name": "Acme", "contact_email": "a@x.com"}],
	  "product_suppliers": [{"product_id": "P1", "supplier_id": "S1"}],
	  "stock_thresholds": [{"product_type": "T", "threshold": 5}]
	}`
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	s, err := memory.LoadFixtureFile(path, now)
	require.NoError(t, err)

	uc := alerts.NewLowStockUseCase(s, nil, nil, nil, alerts.Config{Now: func() time.Time { return now }})
	out, err := uc.GetLowStockAlerts(context.Background(), "C1")
	require.NoError(t, err)
	require.Equal(t, 1, out.TotalAlerts)
	assert.Equal(t, int64(9), out.Alerts[0].DaysUntilStockout)
	assert.Equal(t, "Acme", out.Alerts[0].Supplier.Name)
}

func TestFromFixture_VentaSinFecha_Error(t *testing.T) {
	var fx memory.Fixture
	fx.Sales = append(fx.Sales, struct {
		ProductID string `json:"product_id"`
		Quantity  int64  `json:"quantity"`
		SaleDate  string `json:"sale_date,omitempty"`
		DaysAgo   *int   `json:"days_ago,omitempty"`
	}{ProductID: "P1", Quantity: 1})

	_, err := memory.FromFixture(fx, now)

	assert.Error(t, err)
}

func TestLoadFixtureFile_NoExiste(t *testing.T) {
	_, err := memory.LoadFixtureFile(filepath.Join(t.TempDir(), "nope.json"), now)

	assert.Error(t, err)
}
