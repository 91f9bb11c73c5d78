package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-alerts-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo consultas de solo lectura sobre la tabla sales.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// ListActiveProductIDs productos distintos con ventas desde since (inclusive).
func (r *SaleRepo) ListActiveProductIDs(ctx context.Context, since time.Time) ([]string, error) {
	const query = `
	SELECT DISTINCT product_id::text
	FROM sales
	WHERE sale_date >= $1::date`

	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("sales.ListActiveProductIDs: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sales.ListActiveProductIDs scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales.ListActiveProductIDs rows: %w", err)
	}
	return ids, nil
}

// SumQuantityByProducts suma cantidades vendidas desde since, agrupadas por producto,
// en una sola consulta. Los productos sin ventas no aparecen en el mapa.
func (r *SaleRepo) SumQuantityByProducts(
	ctx context.Context,
	productIDs []string,
	since time.Time,
) (map[string]decimal.Decimal, error) {
	totals := make(map[string]decimal.Decimal, len(productIDs))
	if len(productIDs) == 0 {
		return totals, nil
	}

	const query = `
	SELECT
	    product_id::text,
	    COALESCE(SUM(quantity), 0)::numeric AS total_sales
	FROM sales
	WHERE product_id::text = ANY($1::text[])
	  AND sale_date >= $2::date
	GROUP BY product_id`

	rows, err := r.q.Query(ctx, query, productIDs, since)
	if err != nil {
		return nil, fmt.Errorf("sales.SumQuantityByProducts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    string
			total decimal.Decimal
		)
		if err := rows.Scan(&id, &total); err != nil {
			return nil, fmt.Errorf("sales.SumQuantityByProducts scan: %w", err)
		}
		totals[id] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sales.SumQuantityByProducts rows: %w", err)
	}
	return totals, nil
}
