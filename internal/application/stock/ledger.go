package stock

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
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/inventory"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

const instrumentationName = "github.com/jhoicas/tienda-api/internal/application/stock"

// Audit identifica quién y qué originó un cambio de stock.
type Audit struct {
	Source      entity.MovementSource
	ReferenceID string
	ActorUserID string
}

// Delta cambio con signo a aplicar sobre un producto.
type Delta struct {
	ProductID string
	Quantity  int
}

// ThenFunc corre dentro de la misma transacción que los cambios de stock.
// Si devuelve error se revierte todo, incluido el stock.
type ThenFunc func(ctx context.Context, r repository.Repositories, changes []entity.StockChange) error

// Ledger es el único camino para modificar el stock de un producto.
// Cada delta queda registrado como StockMovement en la misma transacción.
type Ledger struct {
	txRunner ports.TxRunner
	products repository.ProductRepository
	moves    repository.StockMovementRepository
	notifier ports.LowStockNotifier
	// fromStore: sin publicador real los avisos se calculan contra el catálogo.
	fromStore bool
	locks     *KeyedMutex
	log       zerolog.Logger

	tracer   trace.Tracer
	applied  metric.Int64Counter
	rejected metric.Int64Counter
}

// NewLedger construye el libro de stock. notifier puede ser nil (no se publican avisos).
func NewLedger(
	txRunner ports.TxRunner,
	products repository.ProductRepository,
	moves repository.StockMovementRepository,
	notifier ports.LowStockNotifier,
	log zerolog.Logger,
) *Ledger {
	if notifier == nil {
		notifier = ports.NoopLowStockNotifier{}
	}
	_, fromStore := notifier.(ports.NoopLowStockNotifier)
	meter := otel.Meter(instrumentationName)
	applied, _ := meter.Int64Counter("stock.delta.applied",
		metric.WithDescription("deltas de stock aplicados"))
	rejected, _ := meter.Int64Counter("stock.delta.rejected",
		metric.WithDescription("deltas de stock rechazados por stock insuficiente"))
	return &Ledger{
		txRunner:  txRunner,
		products:  products,
		moves:     moves,
		notifier:  notifier,
		fromStore: fromStore,
		locks:     NewKeyedMutex(),
		log:       log.With().Str("component", "stock_ledger").Logger(),
		tracer:    otel.Tracer(instrumentationName),
		applied:   applied,
		rejected:  rejected,
	}
}

// ApplyDelta aplica un único delta y devuelve el stock antes y después.
func (l *Ledger) ApplyDelta(ctx context.Context, productID string, delta int, audit Audit) (entity.StockChange, error) {
	changes, err := l.Apply(ctx, []Delta{{ProductID: productID, Quantity: delta}}, audit, nil)
	if err != nil {
		return entity.StockChange{}, err
	}
	return changes[0], nil
}

// Apply aplica los deltas en una sola transacción: todos o ninguno.
// Los productos se bloquean en orden ascendente de ID (mutex en proceso y FOR UPDATE en la BD);
// los deltas se aplican en el orden recibido. then, si no es nil, corre en la misma transacción.
func (l *Ledger) Apply(ctx context.Context, deltas []Delta, audit Audit, then ThenFunc) ([]entity.StockChange, error) {
	if len(deltas) == 0 {
		return nil, domain.ErrEmptyLineSet
	}
	ids := make([]string, 0, len(deltas))
	for _, d := range deltas {
		if d.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		if d.Quantity == 0 {
			return nil, domain.ErrInvalidQuantity
		}
		ids = append(ids, d.ProductID)
	}

	ctx, span := l.tracer.Start(ctx, "stock.Apply", trace.WithAttributes(
		attribute.String("stock.source", string(audit.Source)),
		attribute.String("stock.reference_id", audit.ReferenceID),
		attribute.Int("stock.deltas", len(deltas)),
	))
	defer span.End()

	unlock := l.locks.Lock(ids...)
	defer unlock()

	var changes []entity.StockChange
	err := l.txRunner.Run(ctx, func(r repository.Repositories) error {
		var err error
		changes, err = applyInTx(ctx, r, uniqueSorted(ids), deltas, audit)
		if err != nil {
			return err
		}
		if then != nil {
			return then(ctx, r, changes)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			l.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("source", string(audit.Source))))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		l.log.Warn().Err(err).
			Str("source", string(audit.Source)).
			Str("reference_id", audit.ReferenceID).
			Msg("cambio de stock rechazado")
		return nil, err
	}

	for _, c := range changes {
		l.applied.Add(ctx, 1, metric.WithAttributes(attribute.String("source", string(audit.Source))))
		l.log.Info().
			Str("product_id", c.ProductID).
			Int("delta", c.Delta).
			Int("previous_stock", c.PreviousStock).
			Int("new_stock", c.NewStock).
			Str("source", string(audit.Source)).
			Str("reference_id", audit.ReferenceID).
			Msg("stock actualizado")
	}
	l.publish(ctx, changes, audit)
	return changes, nil
}

func applyInTx(ctx context.Context, r repository.Repositories, lockOrder []string, deltas []Delta, audit Audit) ([]entity.StockChange, error) {
	locked := make(map[string]*entity.Product, len(lockOrder))
	for _, id := range lockOrder {
		p, err := r.Products.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		locked[id] = p
	}

	now := time.Now().UTC()
	changes := make([]entity.StockChange, 0, len(deltas))
	for _, d := range deltas {
		p := locked[d.ProductID]
		next, err := inventory.NextStock(p.StockQuantity, d.Quantity)
		if err != nil {
			return nil, fmt.Errorf("producto %s: %w", p.ID, err)
		}
		if err := r.Products.UpdateStock(ctx, p.ID, next, now); err != nil {
			return nil, err
		}
		mov := &entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     p.ID,
			Source:        audit.Source,
			ReferenceID:   audit.ReferenceID,
			Quantity:      d.Quantity,
			PreviousStock: p.StockQuantity,
			NewStock:      next,
			ActorUserID:   audit.ActorUserID,
			CreatedAt:     now,
		}
		if err := r.Movements.Create(ctx, mov); err != nil {
			return nil, err
		}
		changes = append(changes, entity.StockChange{
			ProductID:     p.ID,
			Delta:         d.Quantity,
			PreviousStock: p.StockQuantity,
			NewStock:      next,
			StockMinimum:  p.StockMinimum,
		})
		p.StockQuantity = next
	}
	return changes, nil
}

// publish avisa stock bajo o lo limpia. Solo cuenta el último cambio de cada producto.
func (l *Ledger) publish(ctx context.Context, changes []entity.StockChange, audit Audit) {
	last := make(map[string]entity.StockChange, len(changes))
	for _, c := range changes {
		last[c.ProductID] = c
	}
	for id, c := range last {
		var err error
		if c.IsLowStock() {
			err = l.notifier.NotifyLowStock(ctx, entity.LowStockAlert{
				ProductID:     id,
				StockQuantity: c.NewStock,
				StockMinimum:  c.StockMinimum,
				Source:        string(audit.Source),
				ReferenceID:   audit.ReferenceID,
				DetectedAt:    time.Now().UTC(),
			})
		} else if c.PreviousStock <= c.StockMinimum {
			err = l.notifier.ClearLowStock(ctx, id)
		}
		if err != nil {
			l.log.Error().Err(err).Str("product_id", id).Msg("aviso de stock bajo")
		}
	}
}

// GetStock lee el producto con su stock actual.
func (l *Ledger) GetStock(ctx context.Context, productID string) (*entity.Product, error) {
	p, err := l.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Movements lista los movimientos de un producto, más recientes primero.
func (l *Ledger) Movements(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	if _, err := l.GetStock(ctx, filter.ProductID); err != nil {
		return nil, err
	}
	return l.moves.List(ctx, filter)
}

// LowStock devuelve los avisos activos de stock bajo.
func (l *Ledger) LowStock(ctx context.Context) ([]entity.LowStockAlert, error) {
	if !l.fromStore {
		return l.notifier.ListLowStock(ctx)
	}
	products, err := l.products.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]entity.LowStockAlert, 0, len(products))
	for _, p := range products {
		alerts = append(alerts, entity.LowStockAlert{
			ProductID:     p.ID,
			StockQuantity: p.StockQuantity,
			StockMinimum:  p.StockMinimum,
			DetectedAt:    p.UpdatedAt,
		})
	}
	return alerts, nil
}
