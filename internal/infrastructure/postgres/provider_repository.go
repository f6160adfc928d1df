package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ProviderRepository = (*ProviderRepo)(nil)

const providerColumns = `id, razon_social, ruc, telefono, email, direccion`

// ProviderRepo lectura de proveedores.
type ProviderRepo struct {
	q Querier
}

func NewProviderRepository(q Querier) *ProviderRepo {
	return &ProviderRepo{q: q}
}

func scanProvider(row pgx.Row) (*entity.Provider, error) {
	var p entity.Provider
	if err := row.Scan(&p.ID, &p.BusinessName, &p.TaxID, &p.Phone, &p.Email, &p.Address); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID obtiene un proveedor; nil si no existe.
func (r *ProviderRepo) GetByID(ctx context.Context, id string) (*entity.Provider, error) {
	p, err := scanProvider(r.q.QueryRow(ctx, `SELECT `+providerColumns+` FROM providers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Persistence("get provider", err)
	}
	return p, nil
}

// List proveedores ordenados por razón social.
func (r *ProviderRepo) List(ctx context.Context) ([]*entity.Provider, error) {
	rows, err := r.q.Query(ctx, `SELECT `+providerColumns+` FROM providers ORDER BY razon_social`)
	if err != nil {
		return nil, domain.Persistence("list providers", err)
	}
	defer rows.Close()
	list := []*entity.Provider{}
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, domain.Persistence("scan provider", err)
		}
		list = append(list, p)
	}
	return list, domain.Persistence("list providers", rows.Err())
}
