package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-alerts-api/internal/domain/entity"
	"github.com/jhoicas/stock-alerts-api/internal/domain/repository"
)

var _ repository.InventoryLevelRepository = (*InventoryLevelRepo)(nil)

// InventoryLevelRepo implementación de InventoryLevelRepository sobre PostgreSQL.
type InventoryLevelRepo struct {
	q Querier
}

// NewInventoryLevelRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventoryLevelRepository(q Querier) *InventoryLevelRepo {
	return &InventoryLevelRepo{q: q}
}

// ListJoinedByWarehouses devuelve el inventario de las bodegas con producto, bodega,
// el proveedor de menor supplier_id (LATERAL ... LIMIT 1) y el umbral del tipo de producto.
func (r *InventoryLevelRepo) ListJoinedByWarehouses(ctx context.Context, warehouseIDs []string) ([]repository.InventoryJoinedRow, error) {
	if len(warehouseIDs) == 0 {
		return []repository.InventoryJoinedRow{}, nil
	}

	const query = `
	SELECT
	    p.product_id::text,
	    COALESCE(p.product_name, ''),
	    COALESCE(p.sku, ''),
	    COALESCE(p.product_type, ''),
	    w.warehouse_id::text,
	    w.company_id::text,
	    COALESCE(w.warehouse_name, ''),
	    i.current_stock::bigint,
	    sup.supplier_id,
	    sup.supplier_name,
	    sup.contact_email,
	    st.threshold::bigint
	FROM inventory i
	JOIN products   p ON p.product_id   = i.product_id
	JOIN warehouses w ON w.warehouse_id = i.warehouse_id
	LEFT JOIN LATERAL (
	    SELECT
	        s.supplier_id::text           AS supplier_id,
	        COALESCE(s.supplier_name, '') AS supplier_name,
	        COALESCE(s.contact_email, '') AS contact_email
	    FROM product_suppliers ps
	    JOIN suppliers s ON s.supplier_id = ps.supplier_id
	    WHERE ps.product_id = p.product_id
	    ORDER BY s.supplier_id
	    LIMIT 1
	) sup ON true
	LEFT JOIN stock_thresholds st ON st.product_type = p.product_type
	WHERE i.warehouse_id::text = ANY($1::text[])
	ORDER BY i.warehouse_id, i.product_id`

	rows, err := r.q.Query(ctx, query, warehouseIDs)
	if err != nil {
		return nil, fmt.Errorf("list inventory joined: %w", err)
	}
	defer rows.Close()

	list := []repository.InventoryJoinedRow{}
	for rows.Next() {
		var (
			row                        repository.InventoryJoinedRow
			supID, supName, supContact *string
			threshold                  *int64
		)
		if err := rows.Scan(
			&row.Product.ID, &row.Product.Name, &row.Product.SKU, &row.Product.Type,
			&row.Warehouse.ID, &row.Warehouse.CompanyID, &row.Warehouse.Name,
			&row.CurrentStock,
			&supID, &supName, &supContact,
			&threshold,
		); err != nil {
			return nil, fmt.Errorf("scan inventory joined: %w", err)
		}
		if supID != nil {
			row.Supplier = &entity.Supplier{ID: *supID, Name: deref(supName), ContactEmail: deref(supContact)}
		}
		row.Threshold = threshold
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list inventory joined rows: %w", err)
	}
	return list, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
