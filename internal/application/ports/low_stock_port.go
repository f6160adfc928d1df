package ports

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// LowStockNotifier puerto de salida para avisos de stock bajo (Redis, noop).
// Se invoca después del commit; sus errores no revierten el cambio de stock.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, alert entity.LowStockAlert) error
	// ClearLowStock retira el aviso cuando el producto vuelve a superar su mínimo.
	ClearLowStock(ctx context.Context, productID string) error
	ListLowStock(ctx context.Context) ([]entity.LowStockAlert, error)
}

// NoopLowStockNotifier no publica nada; se usa cuando Redis no está configurado.
type NoopLowStockNotifier struct{}

func (NoopLowStockNotifier) NotifyLowStock(context.Context, entity.LowStockAlert) error { return nil }
func (NoopLowStockNotifier) ClearLowStock(context.Context, string) error                { return nil }
func (NoopLowStockNotifier) ListLowStock(context.Context) ([]entity.LowStockAlert, error) {
	return []entity.LowStockAlert{}, nil
}
