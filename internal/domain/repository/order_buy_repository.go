package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// OrderFilter filtro de órdenes de compra; Status nil lista todas.
type OrderFilter struct {
	Status     *entity.OrderStatus
	ProviderID string
	Limit      int
	Offset     int
}

// OrderBuyRepository puerto de persistencia de órdenes de compra con sus líneas.
type OrderBuyRepository interface {
	Create(ctx context.Context, order *entity.OrderBuy) error
	GetByID(ctx context.Context, id string) (*entity.OrderBuy, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.OrderBuy, error)
	// Transition cambia el estado solo si el actual es from; si no, devuelve domain.ErrInvalidStateTransition.
	Transition(ctx context.Context, id string, from, to entity.OrderStatus, t entity.OrderTransition) error
}
