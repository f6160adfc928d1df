package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ProviderRepository lectura de proveedores.
type ProviderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Provider, error)
	List(ctx context.Context) ([]*entity.Provider, error)
}
