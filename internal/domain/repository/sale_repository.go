package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia de ventas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	ListByCashRegister(ctx context.Context, cashRegisterID string) ([]*entity.Sale, error)
	// SumByCashRegister devuelve la suma de totales y la cantidad de ventas de la sesión.
	SumByCashRegister(ctx context.Context, cashRegisterID string) (decimal.Decimal, int, error)
}
