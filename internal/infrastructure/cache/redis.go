// Package cache implementa la caché del conjunto de productos con ventas recientes sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stock-alerts-api/internal/application/alerts"
)

var _ alerts.ActiveProductCache = (*ActiveProductCache)(nil)

const keyPrefix = "lowstock:active-products:"

// Connect crea y valida una conexión a Redis.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar Redis en %s: %w", addr, err)
	}
	return client, nil
}

// ActiveProductCache guarda la lista de productos activos por fecha de inicio de ventana.
// El TTL acota cuánto puede tardar en verse una venta nueva.
type ActiveProductCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewActiveProductCache construye la caché. ttl <= 0 usa 60s.
func NewActiveProductCache(client redis.Cmdable, ttl time.Duration) *ActiveProductCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ActiveProductCache{client: client, ttl: ttl}
}

// Key clave Redis para la ventana que empieza en since.
func Key(since time.Time) string {
	return keyPrefix + since.Format("2006-01-02")
}

// GetActiveProducts devuelve found=false si la clave no existe.
func (c *ActiveProductCache) GetActiveProducts(ctx context.Context, since time.Time) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, Key(since)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return ids, true, nil
}

// SetActiveProducts guarda la lista con el TTL configurado.
func (c *ActiveProductCache) SetActiveProducts(ctx context.Context, since time.Time, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, Key(since), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
