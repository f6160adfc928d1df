package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository             = productRepo{}
	_ repository.StockMovementRepository       = movementRepo{}
	_ repository.InventoryAdjustmentRepository = adjustmentRepo{}
	_ repository.ProviderRepository            = providerRepo{}
)

type productRepo struct{ v view }

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.v.read(func(st *state) {
		if p, ok := st.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// GetForUpdate no necesita bloqueo propio: Run ya serializa todo el almacén.
func (r productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r productRepo) UpdateStock(_ context.Context, id string, quantity int, at time.Time) error {
	return r.v.write(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		if quantity < 0 {
			return domain.Persistence("update stock", domain.ErrInsufficientStock)
		}
		p.StockQuantity = quantity
		p.UpdatedAt = at
		st.products[id] = p
		return nil
	})
}

func (r productRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	list := []*entity.Product{}
	r.v.read(func(st *state) {
		for _, p := range st.products {
			if p.IsLowStock() {
				list = append(list, &p)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].StockQuantity != list[j].StockQuantity {
			return list[i].StockQuantity < list[j].StockQuantity
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

type movementRepo struct{ v view }

func (r movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.v.write(func(st *state) error {
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var matched []*entity.StockMovement
	r.v.read(func(st *state) {
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			if f.From != nil && m.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && m.CreatedAt.After(*f.To) {
				continue
			}
			matched = append(matched, &m)
		}
	})
	lo, hi := page(len(matched), f.Limit, f.Offset)
	return append([]*entity.StockMovement{}, matched[lo:hi]...), nil
}

type adjustmentRepo struct{ v view }

func (r adjustmentRepo) Create(_ context.Context, a *entity.InventoryAdjustment) error {
	return r.v.write(func(st *state) error {
		st.adjustments = append(st.adjustments, *a)
		return nil
	})
}

func (r adjustmentRepo) GetByID(_ context.Context, id string) (*entity.InventoryAdjustment, error) {
	var out *entity.InventoryAdjustment
	r.v.read(func(st *state) {
		for _, a := range st.adjustments {
			if a.ID == id {
				out = &a
				return
			}
		}
	})
	return out, nil
}

// List recorre en orden inverso de inserción: más recientes primero.
func (r adjustmentRepo) List(_ context.Context, f repository.AdjustmentFilter) ([]*entity.InventoryAdjustment, error) {
	var matched []*entity.InventoryAdjustment
	r.v.read(func(st *state) {
		for i := len(st.adjustments) - 1; i >= 0; i-- {
			a := st.adjustments[i]
			if f.ProductID != "" && a.ProductID != f.ProductID {
				continue
			}
			matched = append(matched, &a)
		}
	})
	lo, hi := page(len(matched), f.Limit, f.Offset)
	return append([]*entity.InventoryAdjustment{}, matched[lo:hi]...), nil
}

type providerRepo struct{ v view }

func (r providerRepo) GetByID(_ context.Context, id string) (*entity.Provider, error) {
	var out *entity.Provider
	r.v.read(func(st *state) {
		if p, ok := st.providers[id]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r providerRepo) List(_ context.Context) ([]*entity.Provider, error) {
	list := []*entity.Provider{}
	r.v.read(func(st *state) {
		for _, p := range st.providers {
			list = append(list, &p)
		}
	})
	sortProviders(list)
	return list, nil
}
