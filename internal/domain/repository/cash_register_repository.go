package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// CashRegisterRepository puerto de persistencia de sesiones de caja.
type CashRegisterRepository interface {
	// Create inserta una sesión abierta; si ya hay otra abierta devuelve domain.ErrSessionAlreadyOpen.
	Create(ctx context.Context, session *entity.CashRegister) error
	GetByID(ctx context.Context, id string) (*entity.CashRegister, error)
	GetForUpdate(ctx context.Context, id string) (*entity.CashRegister, error)
	GetOpen(ctx context.Context) (*entity.CashRegister, error)
	// GetOpenForShare lee la sesión abierta con bloqueo compartido (ventas concurrentes, cierre espera).
	GetOpenForShare(ctx context.Context) (*entity.CashRegister, error)
	// Close persiste el arqueo solo si la sesión sigue abierta; si no, domain.ErrInvalidSessionState.
	Close(ctx context.Context, session *entity.CashRegister) error
	List(ctx context.Context, limit, offset int) ([]*entity.CashRegister, error)
}
