// Package memory implementa los puertos de lectura de alertas sobre datos en memoria.
// Se usa en tests y para ejecutar la API localmente sin PostgreSQL (STORE_DRIVER=memory).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-alerts-api/internal/application/alerts"
	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
	"github.com/jhoicas/stock-alerts-api/internal/domain/repository"
)

// Nombres de operación para FailOn y Calls.
const (
	OpGetCompany          = "companies.GetByID"
	OpListWarehouses      = "warehouses.ListByCompany"
	OpListActiveProducts  = "sales.ListActiveProductIDs"
	OpSumSales            = "sales.SumQuantityByProducts"
	OpListInventoryJoined = "inventory.ListJoinedByWarehouses"
)

var (
	_ alerts.ReadRunner                   = (*Store)(nil)
	_ repository.CompanyRepository        = companyRepo{}
	_ repository.WarehouseRepository      = warehouseRepo{}
	_ repository.SaleRepository           = saleRepo{}
	_ repository.InventoryLevelRepository = inventoryRepo{}
)

// Store base de datos en memoria. Segura para uso concurrente.
type Store struct {
	mu               sync.RWMutex
	companies        map[string]entity.Company
	warehouses       []entity.Warehouse
	products         map[string]entity.Product
	inventory        []entity.InventoryLevel
	sales            []entity.Sale
	suppliers        map[string]entity.Supplier
	productSuppliers []entity.ProductSupplier
	thresholds       map[string]int64

	failures map[string]error
	calls    map[string]int
	acquired int
	released int
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		companies:  map[string]entity.Company{},
		products:   map[string]entity.Product{},
		suppliers:  map[string]entity.Supplier{},
		thresholds: map[string]int64{},
		failures:   map[string]error{},
		calls:      map[string]int{},
	}
}

func (s *Store) AddCompany(c entity.Company) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[c.ID] = c
	return s
}

func (s *Store) AddWarehouse(w entity.Warehouse) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warehouses = append(s.warehouses, w)
	return s
}

func (s *Store) AddProduct(p entity.Product) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
	return s
}

// SetStock registra (o reemplaza) el stock de un producto en una bodega.
func (s *Store) SetStock(productID, warehouseID string, qty int64) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.inventory {
		if l.ProductID == productID && l.WarehouseID == warehouseID {
			s.inventory[i].CurrentStock = qty
			return s
		}
	}
	s.inventory = append(s.inventory, entity.InventoryLevel{ProductID: productID, WarehouseID: warehouseID, CurrentStock: qty})
	return s
}

func (s *Store) AddSale(sale entity.Sale) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = append(s.sales, sale)
	return s
}

func (s *Store) AddSupplier(sup entity.Supplier) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers[sup.ID] = sup
	return s
}

// LinkSupplier asocia un proveedor a un producto.
func (s *Store) LinkSupplier(productID, supplierID string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.productSuppliers = append(s.productSuppliers, entity.ProductSupplier{ProductID: productID, SupplierID: supplierID})
	return s
}

// SetThreshold define el umbral de un tipo de producto.
func (s *Store) SetThreshold(productType string, threshold int64) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thresholds[productType] = threshold
	return s
}

// FailOn hace que la operación op devuelva err (nil la restablece).
func (s *Store) FailOn(op string, err error) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
	} else {
		s.failures[op] = err
	}
	return s
}

// Calls devuelve cuántas veces se invocó la operación op.
func (s *Store) Calls(op string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls[op]
}

// Sessions devuelve el número de sesiones adquiridas y liberadas.
func (s *Store) Sessions() (acquired, released int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.acquired, s.released
}

// Ping siempre responde; existe para el endpoint de readiness.
func (s *Store) Ping(context.Context) error { return nil }

// RunReadOnly ejecuta fn con repositorios en memoria. La sesión se libera incluso si fn
// devuelve error o entra en pánico.
func (s *Store) RunReadOnly(ctx context.Context, fn func(store alerts.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.acquired++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.released++
		s.mu.Unlock()
	}()

	return fn(alerts.Store{
		Companies:  companyRepo{s},
		Warehouses: warehouseRepo{s},
		Sales:      saleRepo{s},
		Inventory:  inventoryRepo{s},
	})
}

// begin registra la llamada y devuelve el fallo configurado. Deja tomado el lock de lectura.
func (s *Store) begin(ctx context.Context, op string) error {
	s.mu.Lock()
	s.calls[op]++
	err := s.failures[op]
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	return nil
}

type companyRepo struct{ s *Store }

func (r companyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	if err := r.s.begin(ctx, OpGetCompany); err != nil {
		return nil, err
	}
	defer r.s.mu.RUnlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

type warehouseRepo struct{ s *Store }

func (r warehouseRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Warehouse, error) {
	if err := r.s.begin(ctx, OpListWarehouses); err != nil {
		return nil, err
	}
	defer r.s.mu.RUnlock()
	var list []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if w.CompanyID == companyID {
			list = append(list, &w)
		}
	}
	return list, nil
}

type saleRepo struct{ s *Store }

func (r saleRepo) ListActiveProductIDs(ctx context.Context, since time.Time) ([]string, error) {
	if err := r.s.begin(ctx, OpListActiveProducts); err != nil {
		return nil, err
	}
	defer r.s.mu.RUnlock()
	seen := map[string]struct{}{}
	ids := []string{}
	for _, sale := range r.s.sales {
		if !inWindow(sale.SaleDate, since) {
			continue
		}
		if _, ok := seen[sale.ProductID]; ok {
			continue
		}
		seen[sale.ProductID] = struct{}{}
		ids = append(ids, sale.ProductID)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r saleRepo) SumQuantityByProducts(ctx context.Context, productIDs []string, since time.Time) (map[string]decimal.Decimal, error) {
	if err := r.s.begin(ctx, OpSumSales); err != nil {
		return nil, err
	}
	defer r.s.mu.RUnlock()
	wanted := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}
	totals := make(map[string]decimal.Decimal, len(productIDs))
	for _, sale := range r.s.sales {
		if _, ok := wanted[sale.ProductID]; !ok || !inWindow(sale.SaleDate, since) {
			continue
		}
		totals[sale.ProductID] = totals[sale.ProductID].Add(decimal.NewFromInt(sale.Quantity))
	}
	return totals, nil
}

type inventoryRepo struct{ s *Store }

func (r inventoryRepo) ListJoinedByWarehouses(ctx context.Context, warehouseIDs []string) ([]repository.InventoryJoinedRow, error) {
	if err := r.s.begin(ctx, OpListInventoryJoined); err != nil {
		return nil, err
	}
	defer r.s.mu.RUnlock()

	warehouses := make(map[string]entity.Warehouse, len(warehouseIDs))
	for _, id := range warehouseIDs {
		for _, w := range r.s.warehouses {
			if w.ID == id {
				warehouses[id] = w
			}
		}
	}

	rows := []repository.InventoryJoinedRow{}
	for _, level := range r.s.inventory {
		w, ok := warehouses[level.WarehouseID]
		if !ok {
			continue
		}
		p, ok := r.s.products[level.ProductID]
		if !ok {
			continue
		}
		row := repository.InventoryJoinedRow{
			Product:      p,
			Warehouse:    w,
			CurrentStock: level.CurrentStock,
			Supplier:     r.primarySupplier(p.ID),
		}
		if t, ok := r.s.thresholds[p.Type]; ok {
			row.Threshold = &t
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// primarySupplier elige, entre los proveedores asociados, el de menor ID.
func (r inventoryRepo) primarySupplier(productID string) *entity.Supplier {
	var best *entity.Supplier
	for _, ps := range r.s.productSuppliers {
		if ps.ProductID != productID {
			continue
		}
		sup, ok := r.s.suppliers[ps.SupplierID]
		if !ok {
			continue
		}
		if best == nil || sup.ID < best.ID {
			best = &sup
		}
	}
	return best
}

// inWindow compara por fecha calendario: la venta cuenta si su día es >= since.
func inWindow(saleDate, since time.Time) bool {
	d := saleDate.In(since.Location())
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, since.Location())
	return !day.Before(since)
}
