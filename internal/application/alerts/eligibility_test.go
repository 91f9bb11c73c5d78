package alerts_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-alerts-api/internal/application/alerts"
	"github.com/jhoicas/stock-alerts-api/internal/domain"
	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
	"github.com/jhoicas/stock-alerts-api/internal/infrastructure/memory"
)

func resolve(t *testing.T, store *memory.Store, cache alerts.ActiveProductCache, companyID string) (*alerts.Eligibility, error) {
	t.Helper()
	var (
		el  *alerts.Eligibility
		err error
	)
	r := alerts.NewEligibilityResolver(cache, nil)
	runErr := store.RunReadOnly(context.Background(), func(s alerts.Store) error {
		el, err = r.Resolve(context.Background(), s, companyID, since)
		return nil
	})
	require.NoError(t, runErr)
	return el, err
}

func TestResolve_EmpresaInexistente_NoConsultaMas(t *testing.T) {
	store := scenarioStore()

	el, err := resolve(t, store, nil, "NOPE")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCompanyNotFound))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Nil(t, el)
	assert.Equal(t, 1, store.Calls(memory.OpGetCompany))
	assert.Equal(t, 0, store.Calls(memory.OpListWarehouses))
	assert.Equal(t, 0, store.Calls(memory.OpListActiveProducts))
}

func TestResolve_EmpresaSinBodegas_AlcanceVacio(t *testing.T) {
	store := scenarioStore().AddCompany(entity.Company{ID: "C2", Name: "Vacía"})

	el, err := resolve(t, store, nil, "C2")

	require.NoError(t, err)
	assert.True(t, el.IsEmpty())
	assert.Empty(t, el.ActiveProductIDs)
	assert.Equal(t, 0, store.Calls(memory.OpListActiveProducts))
}

func TestResolve_VentanaInclusiva(t *testing.T) {
	store := scenarioStore().
		AddProduct(entity.Product{ID: "P2", Name: "Borde", Type: "T"}).
		AddProduct(entity.Product{ID: "P3", Name: "Viejo", Type: "T"}).
		AddSale(entity.Sale{ProductID: "P2", Quantity: 1, SaleDate: daysAgo(30)}).
		AddSale(entity.Sale{ProductID: "P3", Quantity: 1, SaleDate: daysAgo(31)})

	el, err := resolve(t, store, nil, "C1")

	require.NoError(t, err)
	assert.True(t, el.IsActive("P1"))
	assert.True(t, el.IsActive("P2"), "una venta exactamente hace 30 días cuenta")
	assert.False(t, el.IsActive("P3"))
	assert.Equal(t, []string{"W1"}, el.WarehouseIDs)
	assert.Equal(t, "Acme Retail", el.Company.Name)
}

func TestResolve_ProductosActivosIndependientesDeLaEmpresa(t *testing.T) {
	store := scenarioStore().
		AddCompany(entity.Company{ID: "C9", Name: "Otra"}).
		AddWarehouse(entity.Warehouse{ID: "W9", CompanyID: "C9", Name: "Otra bodega"}).
		AddProduct(entity.Product{ID: "P9", Name: "Ajeno", Type: "T"}).
		AddSale(entity.Sale{ProductID: "P9", Quantity: 4, SaleDate: daysAgo(1)})

	el, err := resolve(t, store, nil, "C1")

	require.NoError(t, err)
	assert.True(t, el.IsActive("P9"))
	assert.Equal(t, []string{"W1"}, el.WarehouseIDs)
}

func TestResolve_FalloDeDatos_Propaga(t *testing.T) {
	store := scenarioStore().FailOn(memory.OpListWarehouses, errors.New("conexión perdida"))

	_, err := resolve(t, store, nil, "C1")

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "conexión perdida")
}

func TestResolve_Cache_MissLuegoHit(t *testing.T) {
	store := scenarioStore()
	cache := newFakeCache()

	_, err := resolve(t, store, cache, "C1")
	require.NoError(t, err)
	assert.Equal(t, 1, store.Calls(memory.OpListActiveProducts))
	assert.Equal(t, []string{"P1"}, cache.lastSet)

	el, err := resolve(t, store, cache, "C1")
	require.NoError(t, err)
	assert.Equal(t, 1, store.Calls(memory.OpListActiveProducts), "el segundo cálculo sale de la caché")
	assert.True(t, el.IsActive("P1"))
}

func TestResolve_CacheCaida_LeeDeLaFuente(t *testing.T) {
	store := scenarioStore()
	cache := newFakeCache()
	cache.getErr = errors.New("redis: connection refused")
	cache.setErr = errors.New("redis: connection refused")

	el, err := resolve(t, store, cache, "C1")

	require.NoError(t, err)
	assert.True(t, el.IsActive("P1"))
	assert.Equal(t, 1, store.Calls(memory.OpListActiveProducts))
	assert.Equal(t, 1, cache.sets)
}
