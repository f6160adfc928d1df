package cash

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain"
	cashdomain "github.com/jhoicas/tienda-api/internal/domain/cash"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

const instrumentationName = "github.com/jhoicas/tienda-api/internal/application/cash"

// SessionUseCase apertura, consulta y cierre con arqueo de la caja.
// Solo puede haber una sesión abierta a la vez.
type SessionUseCase struct {
	txRunner ports.TxRunner
	sessions repository.CashRegisterRepository
	sales    repository.SaleRepository
	log      zerolog.Logger

	tracer     trace.Tracer
	difference metric.Float64Histogram
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(txRunner ports.TxRunner, sessions repository.CashRegisterRepository, sales repository.SaleRepository, log zerolog.Logger) *SessionUseCase {
	diff, _ := otel.Meter(instrumentationName).Float64Histogram("cash.session.difference",
		metric.WithDescription("diferencia entre monto contado y esperado al cerrar caja"))
	return &SessionUseCase{
		txRunner:   txRunner,
		sessions:   sessions,
		sales:      sales,
		log:        log.With().Str("component", "cash_session").Logger(),
		tracer:     otel.Tracer(instrumentationName),
		difference: diff,
	}
}

// Open abre una sesión con el fondo inicial. Falla con domain.ErrSessionAlreadyOpen si ya hay una abierta.
func (uc *SessionUseCase) Open(ctx context.Context, operatorUserID string, in dto.OpenCashRegisterRequest) (*dto.CashRegisterResponse, error) {
	if in.InitialAmount == nil || in.InitialAmount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	session := &entity.CashRegister{
		ID:             uuid.New().String(),
		OpeningDate:    time.Now().UTC(),
		InitialAmount:  *in.InitialAmount,
		Status:         entity.CashRegisterOpen,
		Notes:          in.Notes,
		OperatorUserID: operatorUserID,
	}
	err := uc.txRunner.Run(ctx, func(r repository.Repositories) error {
		current, err := r.CashRegisters.GetOpen(ctx)
		if err != nil {
			return err
		}
		if current != nil {
			return domain.ErrSessionAlreadyOpen
		}
		return r.CashRegisters.Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("session_id", session.ID).
		Str("initial_amount", session.InitialAmount.String()).
		Str("operator", operatorUserID).
		Msg("caja abierta")
	return toCashRegisterResponse(session, decimal.Zero, 0), nil
}

// GetCurrentOpen devuelve la sesión abierta o nil si no hay ninguna.
func (uc *SessionUseCase) GetCurrentOpen(ctx context.Context) (*dto.CashRegisterResponse, error) {
	session, err := uc.sessions.GetOpen(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return uc.withSales(ctx, session)
}

// Close cierra la sesión: esperado = inicial + ventas, diferencia = contado - esperado.
// Sesión inexistente devuelve domain.ErrNotFound; ya cerrada, domain.ErrInvalidSessionState.
func (uc *SessionUseCase) Close(ctx context.Context, in dto.CloseCashRegisterRequest) (*dto.CloseCashRegisterResponse, error) {
	if in.CashRegisterID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ActualAmount == nil || in.ActualAmount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	ctx, span := uc.tracer.Start(ctx, "cash.Close", trace.WithAttributes(attribute.String("cash_register.id", in.CashRegisterID)))
	defer span.End()

	var (
		session *entity.CashRegister
		summary cashdomain.Summary
	)
	err := uc.txRunner.Run(ctx, func(r repository.Repositories) error {
		var err error
		session, err = r.CashRegisters.GetForUpdate(ctx, in.CashRegisterID)
		if err != nil {
			return err
		}
		if session == nil {
			return domain.ErrNotFound
		}
		if !session.Status.CanTransitionTo(entity.CashRegisterClosed) {
			return fmt.Errorf("%w: sesión en estado %s", domain.ErrInvalidSessionState, session.Status)
		}
		total, count, err := r.Sales.SumByCashRegister(ctx, session.ID)
		if err != nil {
			return err
		}
		summary = cashdomain.Reconcile(session.InitialAmount, total, count, *in.ActualAmount)

		now := time.Now().UTC()
		session.Status = entity.CashRegisterClosed
		session.ClosingDate = &now
		session.ActualAmount = &summary.ActualAmount
		session.ExpectedAmount = &summary.ExpectedAmount
		session.Difference = &summary.Difference
		if in.Notes != nil {
			session.Notes = in.Notes
		}
		return r.CashRegisters.Close(ctx, session)
	})
	if err != nil {
		span.RecordError(err)
		if !errors.Is(err, domain.ErrInvalidSessionState) && !errors.Is(err, domain.ErrNotFound) {
			uc.log.Error().Err(err).Str("session_id", in.CashRegisterID).Msg("cierre de caja")
		}
		return nil, err
	}

	diff, _ := summary.Difference.Float64()
	uc.difference.Record(ctx, diff, metric.WithAttributes(attribute.String("result", string(summary.Result))))
	uc.log.Info().
		Str("session_id", session.ID).
		Str("expected_amount", summary.ExpectedAmount.String()).
		Str("actual_amount", summary.ActualAmount.String()).
		Str("difference", summary.Difference.String()).
		Str("result", string(summary.Result)).
		Msg("caja cerrada")

	return &dto.CloseCashRegisterResponse{
		CashRegister: *toCashRegisterResponse(session, summary.TotalSales, summary.SalesCount),
		Summary:      toSummaryResponse(summary),
	}, nil
}

// GetByID obtiene una sesión con el acumulado de sus ventas.
func (uc *SessionUseCase) GetByID(ctx context.Context, id string) (*dto.CashRegisterResponse, error) {
	session, err := uc.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	return uc.withSales(ctx, session)
}

// List sesiones más recientes primero.
func (uc *SessionUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.CashRegisterResponse, error) {
	list, err := uc.sessions.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CashRegisterResponse, 0, len(list))
	for _, s := range list {
		resp, err := uc.withSales(ctx, s)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Sales ventas de la sesión.
func (uc *SessionUseCase) Sales(ctx context.Context, id string) ([]dto.SaleResponse, error) {
	session, err := uc.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.sales.ListByCashRegister(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSaleResponse(s))
	}
	return out, nil
}

func (uc *SessionUseCase) withSales(ctx context.Context, s *entity.CashRegister) (*dto.CashRegisterResponse, error) {
	total, count, err := uc.sales.SumByCashRegister(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	return toCashRegisterResponse(s, total, count), nil
}
