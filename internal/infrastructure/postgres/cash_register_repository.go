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

var _ repository.CashRegisterRepository = (*CashRegisterRepo)(nil)

var cashRegisterColumns = []string{
	"id", "opening_date", "closing_date", "initial_amount", "actual_amount",
	"expected_amount", "difference", "status", "notes", "operator_user_id",
}

// CashRegisterRepo sesiones de caja. El índice único parcial sobre status='open' garantiza una sola abierta.
type CashRegisterRepo struct {
	q Querier
}

func NewCashRegisterRepository(q Querier) *CashRegisterRepo {
	return &CashRegisterRepo{q: q}
}

func scanCashRegister(row pgx.Row) (*entity.CashRegister, error) {
	var s entity.CashRegister
	var status string
	if err := row.Scan(&s.ID, &s.OpeningDate, &s.ClosingDate, &s.InitialAmount, &s.ActualAmount,
		&s.ExpectedAmount, &s.Difference, &status, &s.Notes, &s.OperatorUserID); err != nil {
		return nil, err
	}
	s.Status = entity.CashRegisterStatus(status)
	return &s, nil
}

// Create inserta la sesión; la violación del índice único se traduce a domain.ErrSessionAlreadyOpen.
func (r *CashRegisterRepo) Create(ctx context.Context, s *entity.CashRegister) error {
	query, args, err := psql.Insert("cash_registers").
		Columns(cashRegisterColumns...).
		Values(s.ID, s.OpeningDate, s.ClosingDate, s.InitialAmount, s.ActualAmount,
			s.ExpectedAmount, s.Difference, string(s.Status), s.Notes, s.OperatorUserID).
		ToSql()
	if err != nil {
		return domain.Persistence("build cash register insert", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSessionAlreadyOpen
		}
		return domain.Persistence("insert cash register", err)
	}
	return nil
}

func (r *CashRegisterRepo) getOne(ctx context.Context, b sq.SelectBuilder, op string) (*entity.CashRegister, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, domain.Persistence("build "+op, err)
	}
	s, err := scanCashRegister(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Persistence(op, err)
	}
	return s, nil
}

func (r *CashRegisterRepo) GetByID(ctx context.Context, id string) (*entity.CashRegister, error) {
	return r.getOne(ctx, psql.Select(cashRegisterColumns...).From("cash_registers").Where(sq.Eq{"id": id}), "get cash register")
}

// GetForUpdate bloquea la sesión hasta el fin de la transacción.
func (r *CashRegisterRepo) GetForUpdate(ctx context.Context, id string) (*entity.CashRegister, error) {
	return r.getOne(ctx, psql.Select(cashRegisterColumns...).From("cash_registers").
		Where(sq.Eq{"id": id}).Suffix("FOR UPDATE"), "get cash register for update")
}

func (r *CashRegisterRepo) GetOpen(ctx context.Context) (*entity.CashRegister, error) {
	return r.getOne(ctx, psql.Select(cashRegisterColumns...).From("cash_registers").
		Where(sq.Eq{"status": string(entity.CashRegisterOpen)}), "get open cash register")
}

// GetOpenForShare: varias ventas comparten el bloqueo; el cierre (FOR UPDATE) espera a que terminen.
func (r *CashRegisterRepo) GetOpenForShare(ctx context.Context) (*entity.CashRegister, error) {
	return r.getOne(ctx, psql.Select(cashRegisterColumns...).From("cash_registers").
		Where(sq.Eq{"status": string(entity.CashRegisterOpen)}).Suffix("FOR SHARE"), "get open cash register for share")
}

// Close guarda el arqueo si la sesión sigue abierta.
func (r *CashRegisterRepo) Close(ctx context.Context, s *entity.CashRegister) error {
	query, args, err := psql.Update("cash_registers").
		Set("status", string(entity.CashRegisterClosed)).
		Set("closing_date", s.ClosingDate).
		Set("actual_amount", s.ActualAmount).
		Set("expected_amount", s.ExpectedAmount).
		Set("difference", s.Difference).
		Set("notes", s.Notes).
		Where(sq.Eq{"id": s.ID, "status": string(entity.CashRegisterOpen)}).
		ToSql()
	if err != nil {
		return domain.Persistence("build cash register close", err)
	}
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return domain.Persistence("close cash register", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvalidSessionState
	}
	return nil
}

// List sesiones por fecha de apertura descendente.
func (r *CashRegisterRepo) List(ctx context.Context, limit, offset int) ([]*entity.CashRegister, error) {
	b := psql.Select(cashRegisterColumns...).From("cash_registers").OrderBy("opening_date DESC", "id DESC")
	query, args, err := paginate(b, limit, offset).ToSql()
	if err != nil {
		return nil, domain.Persistence("build cash registers query", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Persistence("list cash registers", err)
	}
	defer rows.Close()
	list := []*entity.CashRegister{}
	for rows.Next() {
		s, err := scanCashRegister(rows)
		if err != nil {
			return nil, domain.Persistence("scan cash register", err)
		}
		list = append(list, s)
	}
	return list, domain.Persistence("list cash registers", rows.Err())
}
