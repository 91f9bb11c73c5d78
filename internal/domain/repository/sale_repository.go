package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SaleRepository define el puerto de lectura del historial de ventas.
// since es la cota inferior inclusiva de la ventana (fecha calendario).
type SaleRepository interface {
	// ListActiveProductIDs devuelve los productos distintos con al menos una venta con fecha >= since.
	ListActiveProductIDs(ctx context.Context, since time.Time) ([]string, error)

	// SumQuantityByProducts suma la cantidad vendida desde since para cada producto pedido.
	// Los productos sin ventas pueden omitirse del mapa (equivale a cero).
	SumQuantityByProducts(ctx context.Context, productIDs []string, since time.Time) (map[string]decimal.Decimal, error)
}
