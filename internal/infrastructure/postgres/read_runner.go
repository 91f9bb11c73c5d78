package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stock-alerts-api/internal/application/alerts"
)

var _ alerts.ReadRunner = (*ReadRunner)(nil)

// ReadRunner adquiere una conexión del pool por petición y ejecuta fn dentro de una
// transacción REPEATABLE READ de solo lectura, de modo que todas las consultas ven la
// misma foto de los datos.
type ReadRunner struct {
	pool *pgxpool.Pool
}

// NewReadRunner construye el runner con el pool.
func NewReadRunner(pool *pgxpool.Pool) *ReadRunner {
	return &ReadRunner{pool: pool}
}

// RunReadOnly adquiere la conexión, abre la transacción, ejecuta fn con repos atados a la tx
// y libera todo al salir (Rollback + Release diferidos en cualquier ruta).
func (r *ReadRunner) RunReadOnly(ctx context.Context, fn func(store alerts.Store) error) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("begin read-only transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStore(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit read-only transaction: %w", err)
	}
	return nil
}

// NewStore agrupa los repositorios de lectura sobre el mismo Querier.
func NewStore(q Querier) alerts.Store {
	return alerts.Store{
		Companies:  NewCompanyRepository(q),
		Warehouses: NewWarehouseRepository(q),
		Sales:      NewSaleRepository(q),
		Inventory:  NewInventoryLevelRepository(q),
	}
}
