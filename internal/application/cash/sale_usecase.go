package cash

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/stock"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// DefaultPaymentMethod medio de pago cuando la venta no indica otro.
const DefaultPaymentMethod = "efectivo"

// SaleUseCase registra ventas sobre la caja abierta y descuenta el stock en la misma transacción.
type SaleUseCase struct {
	ledger *stock.Ledger
	log    zerolog.Logger
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(ledger *stock.Ledger, log zerolog.Logger) *SaleUseCase {
	return &SaleUseCase{ledger: ledger, log: log.With().Str("component", "sale").Logger()}
}

// Record valida los ítems, descuenta el stock y guarda la venta. Todo o nada.
// Sin caja abierta devuelve domain.ErrNoOpenSession.
func (uc *SaleUseCase) Record(ctx context.Context, actorUserID string, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	items, err := normalizeItems(in.Items)
	if err != nil {
		return nil, err
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		PaymentMethod: in.PaymentMethod,
		CustomerID:    in.CustomerID,
		CreatedBy:     actorUserID,
		Total:         decimal.Zero,
	}
	if sale.PaymentMethod == "" {
		sale.PaymentMethod = DefaultPaymentMethod
	}
	deltas := make([]stock.Delta, 0, len(items))
	for _, it := range items {
		it.ID = uuid.New().String()
		it.SaleID = sale.ID
		it.Subtotal = it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		sale.Total = sale.Total.Add(it.Subtotal)
		sale.Items = append(sale.Items, it)
		deltas = append(deltas, stock.Delta{ProductID: it.ProductID, Quantity: -it.Quantity})
	}

	audit := stock.Audit{Source: entity.MovementSourceSale, ReferenceID: sale.ID, ActorUserID: actorUserID}
	_, err = uc.ledger.Apply(ctx, deltas, audit, func(ctx context.Context, r repository.Repositories, _ []entity.StockChange) error {
		session, err := r.CashRegisters.GetOpenForShare(ctx)
		if err != nil {
			return err
		}
		if session == nil {
			return domain.ErrNoOpenSession
		}
		sale.CashRegisterID = session.ID
		sale.SaleDate = time.Now().UTC()
		return r.Sales.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("session_id", sale.CashRegisterID).
		Str("total", sale.Total.String()).
		Int("items", len(sale.Items)).
		Msg("venta registrada")
	return toSaleResponse(sale), nil
}

// normalizeItems valida y agrupa líneas del mismo producto (mismo precio) en una sola.
func normalizeItems(in []dto.SaleItemRequest) ([]entity.SaleItem, error) {
	if len(in) == 0 {
		return nil, domain.ErrEmptyLineSet
	}
	out := make([]entity.SaleItem, 0, len(in))
	index := make(map[string]int, len(in))
	for _, it := range in {
		if it.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		if it.Quantity <= 0 || it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidLineQuantity
		}
		key := it.ProductID + "|" + it.UnitPrice.String()
		if i, ok := index[key]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		index[key] = len(out)
		out = append(out, entity.SaleItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	return out, nil
}
