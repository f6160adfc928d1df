package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas y sus ítems.
type SaleRepo struct {
	q Querier
}

func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta con sus ítems. Llamar dentro de una transacción.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, cash_register_id, total, payment_method, customer_id, created_by, sale_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.CashRegisterID, s.Total, s.PaymentMethod, s.CustomerID, s.CreatedBy, s.SaleDate,
	)
	if err != nil {
		return domain.Persistence("insert sale", err)
	}
	items := psql.Insert("sale_items").Columns("id", "sale_id", "product_id", "quantity", "unit_price", "subtotal")
	for _, it := range s.Items {
		items = items.Values(it.ID, s.ID, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal)
	}
	query, args, err := items.ToSql()
	if err != nil {
		return domain.Persistence("build sale items insert", err)
	}
	_, err = r.q.Exec(ctx, query, args...)
	return domain.Persistence("insert sale items", err)
}

// ListByCashRegister ventas de la sesión en orden de registro, con ítems.
func (r *SaleRepo) ListByCashRegister(ctx context.Context, cashRegisterID string) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, cash_register_id, total, payment_method, customer_id, created_by, sale_date
		FROM sales WHERE cash_register_id = $1 ORDER BY sale_date, id`, cashRegisterID)
	if err != nil {
		return nil, domain.Persistence("list sales", err)
	}
	list := []*entity.Sale{}
	byID := map[string]*entity.Sale{}
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.CashRegisterID, &s.Total, &s.PaymentMethod, &s.CustomerID, &s.CreatedBy, &s.SaleDate); err != nil {
			rows.Close()
			return nil, domain.Persistence("scan sale", err)
		}
		list = append(list, &s)
		byID[s.ID] = &s
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("list sales", err)
	}
	if len(list) == 0 {
		return list, nil
	}

	itemRows, err := r.q.Query(ctx, `
		SELECT i.id, i.sale_id, i.product_id, i.quantity, i.unit_price, i.subtotal
		FROM sale_items i JOIN sales s ON s.id = i.sale_id
		WHERE s.cash_register_id = $1 ORDER BY i.sale_id, i.seq`, cashRegisterID)
	if err != nil {
		return nil, domain.Persistence("list sale items", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var it entity.SaleItem
		if err := itemRows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, domain.Persistence("scan sale item", err)
		}
		if s, ok := byID[it.SaleID]; ok {
			s.Items = append(s.Items, it)
		}
	}
	return list, domain.Persistence("list sale items", itemRows.Err())
}

// SumByCashRegister suma y cuenta las ventas de la sesión; COALESCE devuelve cero sin ventas.
func (r *SaleRepo) SumByCashRegister(ctx context.Context, cashRegisterID string) (decimal.Decimal, int, error) {
	var total decimal.Decimal
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0), COUNT(*) FROM sales WHERE cash_register_id = $1`,
		cashRegisterID,
	).Scan(&total, &count)
	if err != nil {
		return decimal.Zero, 0, domain.Persistence("sum sales", err)
	}
	return total, count, nil
}
