package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos de stock (solo inserción).
type StockMovementRepo struct {
	q Querier
}

func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (id, product_id, source, reference_id, quantity, previous_stock, new_stock, actor_user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.ProductID, string(m.Source), m.ReferenceID, m.Quantity, m.PreviousStock, m.NewStock, m.ActorUserID, m.CreatedAt,
	)
	return domain.Persistence("insert stock movement", err)
}

// List movimientos del producto en el rango [From, To], más recientes primero.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	b := psql.Select("id", "product_id", "source", "reference_id", "quantity", "previous_stock", "new_stock", "actor_user_id", "created_at").
		From("stock_movements").
		OrderBy("created_at DESC", "id DESC")
	if f.ProductID != "" {
		b = b.Where(sq.Eq{"product_id": f.ProductID})
	}
	if f.From != nil {
		b = b.Where(sq.GtOrEq{"created_at": *f.From})
	}
	if f.To != nil {
		b = b.Where(sq.LtOrEq{"created_at": *f.To})
	}
	query, args, err := paginate(b, f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, domain.Persistence("build movements query", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence("list stock movements", err)
	}
	defer rows.Close()
	list := []*entity.StockMovement{}
	for rows.Next() {
		var m entity.StockMovement
		var source string
		if err := rows.Scan(&m.ID, &m.ProductID, &source, &m.ReferenceID, &m.Quantity,
			&m.PreviousStock, &m.NewStock, &m.ActorUserID, &m.CreatedAt); err != nil {
			return nil, domain.Persistence("scan stock movement", err)
		}
		m.Source = entity.MovementSource(source)
		list = append(list, &m)
	}
	return list, domain.Persistence("list stock movements", rows.Err())
}
