package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.OrderBuyRepository = (*OrderBuyRepo)(nil)

var orderColumns = []string{
	"id", "provider_id", "fecha_orden", "fecha_entrega", "fecha_entrega_real", "fecha_cancelacion",
	"estado", "igv_percent", "subtotal", "igv", "total", "observaciones", "motivo_cancelacion", "created_by",
}

// OrderBuyRepo órdenes de compra y sus líneas (detail_order_buys).
type OrderBuyRepo struct {
	q Querier
}

func NewOrderBuyRepository(q Querier) *OrderBuyRepo {
	return &OrderBuyRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.OrderBuy, error) {
	var o entity.OrderBuy
	var status string
	if err := row.Scan(&o.ID, &o.ProviderID, &o.OrderDate, &o.ExpectedDeliveryDate, &o.ReceivedAt, &o.CancelledAt,
		&status, &o.IGVPercent, &o.Subtotal, &o.IGV, &o.Total, &o.Notes, &o.CancelReason, &o.CreatedBy); err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}

// Create inserta la cabecera y todas las líneas. Llamar dentro de una transacción.
func (r *OrderBuyRepo) Create(ctx context.Context, o *entity.OrderBuy) error {
	query, args, err := psql.Insert("order_buys").
		Columns(orderColumns...).
		Values(o.ID, o.ProviderID, o.OrderDate, o.ExpectedDeliveryDate, o.ReceivedAt, o.CancelledAt,
			string(o.Status), o.IGVPercent, o.Subtotal, o.IGV, o.Total, o.Notes, o.CancelReason, o.CreatedBy).
		ToSql()
	if err != nil {
		return domain.Persistence("build order insert", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return domain.Persistence("insert order_buy", err)
	}

	lines := psql.Insert("detail_order_buys").
		Columns("id", "order_buy_id", "line_no", "product_id", "cantidad", "precio_unitario", "subtotal")
	for _, l := range o.Lines {
		lines = lines.Values(l.ID, o.ID, l.LineNo, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal)
	}
	query, args, err = lines.ToSql()
	if err != nil {
		return domain.Persistence("build order lines insert", err)
	}
	_, err = r.q.Exec(ctx, query, args...)
	return domain.Persistence("insert detail_order_buys", err)
}

// GetByID obtiene la orden con sus líneas en orden; nil si no existe.
func (r *OrderBuyRepo) GetByID(ctx context.Context, id string) (*entity.OrderBuy, error) {
	query, args, err := psql.Select(orderColumns...).From("order_buys").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, domain.Persistence("build order query", err)
	}
	o, err := scanOrder(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Persistence("get order_buy", err)
	}
	if o.Lines, err = r.lines(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderBuyRepo) lines(ctx context.Context, orderID string) ([]entity.OrderBuyLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_buy_id, line_no, product_id, cantidad, precio_unitario, subtotal
		FROM detail_order_buys WHERE order_buy_id = $1 ORDER BY line_no`, orderID)
	if err != nil {
		return nil, domain.Persistence("list order lines", err)
	}
	defer rows.Close()
	var list []entity.OrderBuyLine
	for rows.Next() {
		var l entity.OrderBuyLine
		if err := rows.Scan(&l.ID, &l.OrderBuyID, &l.LineNo, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, domain.Persistence("scan order line", err)
		}
		list = append(list, l)
	}
	return list, domain.Persistence("list order lines", rows.Err())
}

// List órdenes más recientes primero, con sus líneas.
func (r *OrderBuyRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.OrderBuy, error) {
	b := psql.Select(orderColumns...).From("order_buys").OrderBy("fecha_orden DESC", "id DESC")
	if f.Status != nil {
		b = b.Where(sq.Eq{"estado": string(*f.Status)})
	}
	if f.ProviderID != "" {
		b = b.Where(sq.Eq{"provider_id": f.ProviderID})
	}
	query, args, err := paginate(b, f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, domain.Persistence("build orders query", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence("list order_buys", err)
	}
	list := []*entity.OrderBuy{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, domain.Persistence("scan order_buy", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("list order_buys", err)
	}
	// las líneas se leen después de cerrar rows: una tx no admite dos consultas abiertas.
	for _, o := range list {
		if o.Lines, err = r.lines(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Transition actualiza el estado con la condición estado = from.
func (r *OrderBuyRepo) Transition(ctx context.Context, id string, from, to entity.OrderStatus, t entity.OrderTransition) error {
	b := psql.Update("order_buys").
		Set("estado", string(to)).
		Where(sq.Eq{"id": id, "estado": string(from)})
	switch to {
	case entity.OrderStatusReceived:
		b = b.Set("fecha_entrega_real", t.At)
	case entity.OrderStatusCancelled:
		b = b.Set("fecha_cancelacion", t.At).Set("motivo_cancelacion", t.CancelReason)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return domain.Persistence("build order transition", err)
	}
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return domain.Persistence("update order_buy status", err)
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}

	var current string
	err = r.q.QueryRow(ctx, `SELECT estado FROM order_buys WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return domain.Persistence("get order_buy status", err)
	}
	return fmt.Errorf("%w: orden en estado %s", domain.ErrInvalidStateTransition, current)
}
