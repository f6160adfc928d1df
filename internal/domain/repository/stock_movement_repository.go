package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// MovementFilter filtro para listar movimientos de un producto (más recientes primero).
type MovementFilter struct {
	ProductID string
	From, To  *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository puerto del libro de movimientos de stock. Solo inserción y lectura.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
}
