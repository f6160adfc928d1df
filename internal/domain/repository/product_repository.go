package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// El catálogo se administra fuera de este servicio; aquí solo se lee y se actualiza el stock.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	UpdateStock(ctx context.Context, id string, quantity int, at time.Time) error
	// ListLowStock productos con stock_quantity <= stock_minimum, de menor a mayor existencia.
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
}
