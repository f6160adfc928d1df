package purchasing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/application/stock"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	purchdomain "github.com/jhoicas/tienda-api/internal/domain/purchasing"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// LineReceipt línea aplicada durante la recepción.
type LineReceipt struct {
	Line   entity.OrderBuyLine
	Change entity.StockChange
}

// LineFailure línea cuya aplicación falló.
type LineFailure struct {
	Line entity.OrderBuyLine
	Err  error
}

// PartialReceiptError la recepción no terminó. Las líneas aplicadas no se revierten
// y la orden sigue pendiente. Si todas las líneas se aplicaron y falló el cambio a recibida,
// Failed queda vacío y TransitionErr lleva la causa.
type PartialReceiptError struct {
	Order         *entity.OrderBuy
	Applied       []LineReceipt
	Failed        LineFailure
	Pending       []entity.OrderBuyLine
	TransitionErr error
}

func (e *PartialReceiptError) Error() string {
	if e.TransitionErr != nil {
		return fmt.Sprintf("recepción parcial de la orden %s: %d líneas aplicadas, falló el cambio a recibida: %v",
			e.Order.ID, len(e.Applied), e.TransitionErr)
	}
	return fmt.Sprintf("recepción parcial de la orden %s: %d líneas aplicadas, falló la línea %d (%s): %v",
		e.Order.ID, len(e.Applied), e.Failed.Line.LineNo, e.Failed.Line.ProductID, e.Failed.Err)
}

// Unwrap expone la causa (ej. domain.ErrNotFound o el error de persistencia del cambio de estado).
func (e *PartialReceiptError) Unwrap() error {
	if e.TransitionErr != nil {
		return e.TransitionErr
	}
	return e.Failed.Err
}

// Is permite errors.Is(err, domain.ErrPartialReceipt).
func (e *PartialReceiptError) Is(target error) bool { return target == domain.ErrPartialReceipt }

// OrderBuyUseCase flujo de órdenes de compra: crear, recibir (ingresa stock) y cancelar.
type OrderBuyUseCase struct {
	txRunner  ports.TxRunner
	ledger    *stock.Ledger
	orders    repository.OrderBuyRepository
	providers repository.ProviderRepository
	products  repository.ProductRepository
	locks     *stock.KeyedMutex
	log       zerolog.Logger
	tracer    trace.Tracer
}

// NewOrderBuyUseCase construye el caso de uso.
func NewOrderBuyUseCase(
	txRunner ports.TxRunner,
	ledger *stock.Ledger,
	orders repository.OrderBuyRepository,
	providers repository.ProviderRepository,
	products repository.ProductRepository,
	log zerolog.Logger,
) *OrderBuyUseCase {
	return &OrderBuyUseCase{
		txRunner:  txRunner,
		ledger:    ledger,
		orders:    orders,
		providers: providers,
		products:  products,
		locks:     stock.NewKeyedMutex(),
		log:       log.With().Str("component", "order_buy").Logger(),
		tracer:    otel.Tracer("github.com/jhoicas/tienda-api/internal/application/purchasing"),
	}
}

// Create valida proveedor y líneas, calcula subtotal, IGV y total y guarda la orden pendiente.
func (uc *OrderBuyUseCase) Create(ctx context.Context, actorUserID string, in dto.CreateOrderBuyRequest) (*dto.OrderBuyResponse, error) {
	if in.ProviderID == "" {
		return nil, domain.ErrInvalidInput
	}
	igvPercent := purchdomain.DefaultIGVPercent
	if in.IGVPercent != nil {
		if in.IGVPercent.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		igvPercent = *in.IGVPercent
	}

	orderID := uuid.New().String()
	lines := make([]entity.OrderBuyLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		lines = append(lines, entity.OrderBuyLine{
			ID:         uuid.New().String(),
			OrderBuyID: orderID,
			LineNo:     i + 1,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
		})
	}
	if err := purchdomain.ValidateLines(lines); err != nil {
		return nil, err
	}

	provider, err := uc.providers.GetByID(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("proveedor %s: %w", in.ProviderID, domain.ErrNotFound)
	}
	for _, l := range lines {
		p, err := uc.products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("producto %s: %w", l.ProductID, domain.ErrNotFound)
		}
	}

	totals := purchdomain.ComputeTotals(lines, igvPercent)
	order := &entity.OrderBuy{
		ID:                   orderID,
		ProviderID:           in.ProviderID,
		OrderDate:            time.Now().UTC(),
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		Status:               entity.OrderStatusPending,
		IGVPercent:           igvPercent,
		Subtotal:             totals.Subtotal,
		IGV:                  totals.IGV,
		Total:                totals.Total,
		Notes:                in.Notes,
		CreatedBy:            actorUserID,
		Lines:                lines,
	}
	// Cabecera y líneas en una sola transacción.
	err = uc.txRunner.Run(ctx, func(r repository.Repositories) error {
		return r.Orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order_id", order.ID).
		Str("provider_id", order.ProviderID).
		Str("total", order.Total.String()).
		Int("lines", len(order.Lines)).
		Msg("orden de compra creada")
	return ToOrderBuyResponse(order), nil
}

// Receive ingresa al stock cada línea en orden. Si todas se aplican la orden pasa a recibida;
// si una falla, o falla el cambio de estado final, devuelve *PartialReceiptError con la orden aún pendiente.
func (uc *OrderBuyUseCase) Receive(ctx context.Context, actorUserID, orderID string) (*dto.ReceiveOrderBuyResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "purchasing.Receive", trace.WithAttributes(attribute.String("order.id", orderID)))
	defer span.End()

	unlock := uc.locks.Lock(orderID)
	defer unlock()

	order, err := uc.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(entity.OrderStatusReceived) {
		return nil, fmt.Errorf("%w: orden en estado %s", domain.ErrInvalidStateTransition, order.Status)
	}

	audit := stock.Audit{Source: entity.MovementSourceOrderBuy, ReferenceID: order.ID, ActorUserID: actorUserID}
	applied := make([]LineReceipt, 0, len(order.Lines))
	for i, line := range order.Lines {
		change, err := uc.ledger.ApplyDelta(ctx, line.ProductID, line.Quantity, audit)
		if err != nil {
			partial := &PartialReceiptError{
				Order:   order,
				Applied: applied,
				Failed:  LineFailure{Line: line, Err: err},
				Pending: append([]entity.OrderBuyLine(nil), order.Lines[i+1:]...),
			}
			span.RecordError(partial)
			span.SetStatus(codes.Error, "recepción parcial")
			uc.log.Warn().Err(err).
				Str("order_id", order.ID).
				Int("applied", len(applied)).
				Int("failed_line", line.LineNo).
				Msg("recepción de orden detenida")
			return nil, partial
		}
		applied = append(applied, LineReceipt{Line: line, Change: change})
	}

	now := time.Now().UTC()
	err = uc.txRunner.Run(ctx, func(r repository.Repositories) error {
		return r.Orders.Transition(ctx, order.ID, entity.OrderStatusPending, entity.OrderStatusReceived, entity.OrderTransition{At: now})
	})
	if err != nil {
		// El stock ya ingresó: se reporta para que no se reintente a ciegas.
		partial := &PartialReceiptError{Order: order, Applied: applied, TransitionErr: err}
		span.RecordError(partial)
		span.SetStatus(codes.Error, "recepción parcial")
		uc.log.Error().Err(err).
			Str("order_id", order.ID).
			Int("applied", len(applied)).
			Msg("stock aplicado pero la orden no pasó a recibida")
		return nil, partial
	}
	order.Status = entity.OrderStatusReceived
	order.ReceivedAt = &now

	uc.log.Info().Str("order_id", order.ID).Int("lines", len(applied)).Msg("orden de compra recibida")
	return &dto.ReceiveOrderBuyResponse{
		Order:           *ToOrderBuyResponse(order),
		UpdatedProducts: ToLineReceipts(applied),
	}, nil
}

// Cancel anula una orden pendiente. No afecta el stock.
func (uc *OrderBuyUseCase) Cancel(ctx context.Context, actorUserID, orderID string, reason *string) (*dto.OrderBuyResponse, error) {
	unlock := uc.locks.Lock(orderID)
	defer unlock()

	order, err := uc.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(entity.OrderStatusCancelled) {
		return nil, fmt.Errorf("%w: orden en estado %s", domain.ErrInvalidStateTransition, order.Status)
	}
	now := time.Now().UTC()
	t := entity.OrderTransition{At: now, CancelReason: reason}
	err = uc.txRunner.Run(ctx, func(r repository.Repositories) error {
		return r.Orders.Transition(ctx, order.ID, entity.OrderStatusPending, entity.OrderStatusCancelled, t)
	})
	if err != nil {
		return nil, err
	}
	order.Status = entity.OrderStatusCancelled
	order.CancelledAt = &now
	order.CancelReason = reason

	uc.log.Info().Str("order_id", order.ID).Str("actor", actorUserID).Msg("orden de compra cancelada")
	return ToOrderBuyResponse(order), nil
}

// GetByID obtiene la orden con sus líneas.
func (uc *OrderBuyUseCase) GetByID(ctx context.Context, orderID string) (*dto.OrderBuyResponse, error) {
	order, err := uc.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToOrderBuyResponse(order), nil
}

// List órdenes más recientes primero, filtradas opcionalmente por estado y proveedor.
func (uc *OrderBuyUseCase) List(ctx context.Context, q dto.OrderBuyQuery) ([]dto.OrderBuyResponse, error) {
	f := repository.OrderFilter{ProviderID: q.ProviderID, Limit: q.Limit, Offset: q.Offset}
	if q.Status != "" {
		s := entity.OrderStatus(q.Status)
		if !s.Valid() {
			return nil, domain.ErrInvalidInput
		}
		f.Status = &s
	}
	list, err := uc.orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderBuyResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *ToOrderBuyResponse(o))
	}
	return out, nil
}

func (uc *OrderBuyUseCase) getOrder(ctx context.Context, orderID string) (*entity.OrderBuy, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// AsPartialReceipt extrae el reporte de una recepción parcial.
func AsPartialReceipt(err error) (*PartialReceiptError, bool) {
	var p *PartialReceiptError
	ok := errors.As(err, &p)
	return p, ok
}
