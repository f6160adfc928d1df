// Package cache publica y guarda en Redis los avisos de stock bajo.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

const (
	// LowStockChannel canal pub/sub donde se emite cada aviso.
	LowStockChannel = "stock:low"
	lowStockPrefix  = "stock:low:"
)

var _ ports.LowStockNotifier = (*LowStockNotifier)(nil)

// LowStockNotifier guarda un aviso por producto (stock:low:<id>) con TTL y lo publica en LowStockChannel.
type LowStockNotifier struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient crea el cliente Redis a partir de dirección, contraseña y base.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

// NewLowStockNotifier ttl <= 0 deja los avisos sin expiración.
func NewLowStockNotifier(client *redis.Client, ttl time.Duration) *LowStockNotifier {
	return &LowStockNotifier{client: client, ttl: ttl}
}

func (n *LowStockNotifier) Ping(ctx context.Context) error {
	return n.client.Ping(ctx).Err()
}

// NotifyLowStock SET + PUBLISH en un pipeline.
func (n *LowStockNotifier) NotifyLowStock(ctx context.Context, alert entity.LowStockAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("serializar aviso: %w", err)
	}
	_, err = n.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, lowStockPrefix+alert.ProductID, payload, n.ttl)
		p.Publish(ctx, LowStockChannel, payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("publicar stock bajo %s: %w", alert.ProductID, err)
	}
	return nil
}

// ClearLowStock borra el aviso del producto.
func (n *LowStockNotifier) ClearLowStock(ctx context.Context, productID string) error {
	if err := n.client.Del(ctx, lowStockPrefix+productID).Err(); err != nil {
		return fmt.Errorf("limpiar stock bajo %s: %w", productID, err)
	}
	return nil
}

// ListLowStock recorre las claves con SCAN; los avisos quedan ordenados por menor existencia.
func (n *LowStockNotifier) ListLowStock(ctx context.Context) ([]entity.LowStockAlert, error) {
	alerts := []entity.LowStockAlert{}
	iter := n.client.Scan(ctx, 0, lowStockPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		raw, err := n.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue // expiró entre SCAN y GET
		}
		if err != nil {
			return nil, fmt.Errorf("leer aviso %s: %w", iter.Val(), err)
		}
		var a entity.LowStockAlert
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("aviso corrupto %s: %w", iter.Val(), err)
		}
		alerts = append(alerts, a)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan stock bajo: %w", err)
	}
	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].StockQuantity != alerts[j].StockQuantity {
			return alerts[i].StockQuantity < alerts[j].StockQuantity
		}
		return alerts[i].ProductID < alerts[j].ProductID
	})
	return alerts, nil
}

func (n *LowStockNotifier) Close() error {
	return n.client.Close()
}
