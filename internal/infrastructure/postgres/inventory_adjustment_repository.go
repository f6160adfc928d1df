package postgres

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.InventoryAdjustmentRepository = (*InventoryAdjustmentRepo)(nil)

var adjustmentColumns = []string{
	"id", "product_id", "adjustment_type", "quantity", "reason", "reason_description",
	"previous_stock", "new_stock", "adjustment_date", "actor_user_id",
}

// InventoryAdjustmentRepo ajustes manuales; nunca se actualizan ni borran.
type InventoryAdjustmentRepo struct {
	q Querier
}

func NewInventoryAdjustmentRepository(q Querier) *InventoryAdjustmentRepo {
	return &InventoryAdjustmentRepo{q: q}
}

func scanAdjustment(row pgx.Row) (*entity.InventoryAdjustment, error) {
	var a entity.InventoryAdjustment
	var typ, reason string
	if err := row.Scan(&a.ID, &a.ProductID, &typ, &a.Quantity, &reason, &a.ReasonDescription,
		&a.PreviousStock, &a.NewStock, &a.AdjustmentDate, &a.ActorUserID); err != nil {
		return nil, err
	}
	a.Type = entity.AdjustmentType(typ)
	a.Reason = entity.AdjustmentReason(reason)
	return &a, nil
}

// Create persiste el ajuste.
func (r *InventoryAdjustmentRepo) Create(ctx context.Context, a *entity.InventoryAdjustment) error {
	query, args, err := psql.Insert("inventory_adjustments").
		Columns(adjustmentColumns...).
		Values(a.ID, a.ProductID, string(a.Type), a.Quantity, string(a.Reason), a.ReasonDescription,
			a.PreviousStock, a.NewStock, a.AdjustmentDate, a.ActorUserID).
		ToSql()
	if err != nil {
		return domain.Persistence("build adjustment insert", err)
	}
	_, err = r.q.Exec(ctx, query, args...)
	return domain.Persistence("insert inventory adjustment", err)
}

// GetByID obtiene un ajuste; nil si no existe.
func (r *InventoryAdjustmentRepo) GetByID(ctx context.Context, id string) (*entity.InventoryAdjustment, error) {
	query, args, err := psql.Select(adjustmentColumns...).From("inventory_adjustments").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, domain.Persistence("build adjustment query", err)
	}
	a, err := scanAdjustment(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Persistence("get inventory adjustment", err)
	}
	return a, nil
}

// List ajustes por fecha descendente; a igual fecha, el último insertado primero.
func (r *InventoryAdjustmentRepo) List(ctx context.Context, f repository.AdjustmentFilter) ([]*entity.InventoryAdjustment, error) {
	b := psql.Select(adjustmentColumns...).From("inventory_adjustments").OrderBy("adjustment_date DESC", "seq DESC")
	if f.ProductID != "" {
		b = b.Where(sq.Eq{"product_id": f.ProductID})
	}
	query, args, err := paginate(b, f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, domain.Persistence("build adjustments query", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence("list inventory adjustments", err)
	}
	defer rows.Close()
	list := []*entity.InventoryAdjustment{}
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			return nil, domain.Persistence("scan inventory adjustment", err)
		}
		list = append(list, a)
	}
	return list, domain.Persistence("list inventory adjustments", rows.Err())
}
