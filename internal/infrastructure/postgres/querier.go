package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Querier abstrae pool, conexión o transacción para las consultas de lectura.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
