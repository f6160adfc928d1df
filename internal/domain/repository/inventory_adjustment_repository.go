package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// AdjustmentFilter filtro de ajustes; ProductID vacío lista todos.
type AdjustmentFilter struct {
	ProductID string
	Limit     int
	Offset    int
}

// InventoryAdjustmentRepository puerto de persistencia de ajustes manuales (inmutables).
type InventoryAdjustmentRepository interface {
	Create(ctx context.Context, adj *entity.InventoryAdjustment) error
	GetByID(ctx context.Context, id string) (*entity.InventoryAdjustment, error)
	// List devuelve los ajustes ordenados por fecha descendente.
	List(ctx context.Context, filter AdjustmentFilter) ([]*entity.InventoryAdjustment, error)
}
