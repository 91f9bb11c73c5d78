package alerts

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/stock-alerts-api/internal/domain"
	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
	"github.com/jhoicas/stock-alerts-api/pkg/logger"
)

// Eligibility es el alcance de elegibilidad de una empresa: sus bodegas y los productos
// con ventas en la ventana reciente. Solo las filas de inventario dentro de este alcance
// pueden producir alertas.
type Eligibility struct {
	Company          *entity.Company
	WarehouseIDs     []string
	ActiveProductIDs map[string]struct{}
	Since            time.Time
}

// IsEmpty indica que ninguna alerta es posible (empresa sin bodegas).
func (e *Eligibility) IsEmpty() bool {
	return len(e.WarehouseIDs) == 0
}

// IsActive informa si el producto vendió en la ventana.
func (e *Eligibility) IsActive(productID string) bool {
	_, ok := e.ActiveProductIDs[productID]
	return ok
}

// EligibilityResolver determina, para una empresa, sus bodegas y los productos activos.
type EligibilityResolver struct {
	cache ActiveProductCache
	log   *logger.Logger
}

// NewEligibilityResolver construye el resolver. cache puede ser nil.
func NewEligibilityResolver(cache ActiveProductCache, log *logger.Logger) *EligibilityResolver {
	if log == nil {
		log = logger.Nop()
	}
	return &EligibilityResolver{cache: cache, log: log}
}

// Resolve valida que la empresa exista y devuelve su alcance de elegibilidad.
// Devuelve domain.ErrCompanyNotFound si la empresa no existe; en ese caso no consulta
// bodegas ni ventas. Una empresa sin bodegas produce un alcance vacío sin error.
func (r *EligibilityResolver) Resolve(ctx context.Context, store Store, companyID string, since time.Time) (*Eligibility, error) {
	company, err := store.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("eligibility: empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}

	warehouses, err := store.Warehouses.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("eligibility: bodegas: %w", err)
	}

	el := &Eligibility{
		Company:          company,
		WarehouseIDs:     make([]string, 0, len(warehouses)),
		ActiveProductIDs: map[string]struct{}{},
		Since:            since,
	}
	seen := make(map[string]struct{}, len(warehouses))
	for _, w := range warehouses {
		if _, dup := seen[w.ID]; dup {
			continue
		}
		seen[w.ID] = struct{}{}
		el.WarehouseIDs = append(el.WarehouseIDs, w.ID)
	}
	sort.Strings(el.WarehouseIDs)

	if el.IsEmpty() {
		return el, nil
	}

	ids, err := r.activeProducts(ctx, store, since)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		el.ActiveProductIDs[id] = struct{}{}
	}
	return el, nil
}

// activeProducts consulta la caché (si existe) antes que la base de datos.
// Un fallo de la caché no aborta la petición: se registra y se lee de la fuente.
func (r *EligibilityResolver) activeProducts(ctx context.Context, store Store, since time.Time) ([]string, error) {
	if r.cache != nil {
		ids, found, err := r.cache.GetActiveProducts(ctx, since)
		if err != nil {
			r.log.Warn().Err(err).Msg("caché de productos activos no disponible")
		} else if found {
			return ids, nil
		}
	}

	ids, err := store.Sales.ListActiveProductIDs(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("eligibility: productos activos: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.SetActiveProducts(ctx, since, ids); err != nil {
			r.log.Warn().Err(err).Msg("guardar productos activos en caché")
		}
	}
	return ids, nil
}
