package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/stock"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	invdomain "github.com/jhoicas/tienda-api/internal/domain/inventory"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// AdjustmentUseCase ajustes manuales de inventario (mermas, conteos, daños, devoluciones).
// El ajuste y el cambio de stock se confirman en la misma transacción del libro de stock.
type AdjustmentUseCase struct {
	ledger      *stock.Ledger
	adjustments repository.InventoryAdjustmentRepository
	log         zerolog.Logger
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(ledger *stock.Ledger, adjustments repository.InventoryAdjustmentRepository, log zerolog.Logger) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		ledger:      ledger,
		adjustments: adjustments,
		log:         log.With().Str("component", "inventory_adjustment").Logger(),
	}
}

// Adjust valida el pedido, aplica el delta con signo y registra el ajuste con el stock antes/después.
// Con stock insuficiente no se escribe nada y se devuelve domain.ErrInsufficientStock.
func (uc *AdjustmentUseCase) Adjust(ctx context.Context, actorUserID string, in dto.AdjustInventoryRequest) (*dto.AdjustmentResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	adjType, err := invdomain.ParseAdjustmentType(in.AdjustmentType)
	if err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	reason, err := invdomain.ParseReason(in.Reason)
	if err != nil {
		return nil, err
	}

	adj := &entity.InventoryAdjustment{
		ID:                uuid.New().String(),
		ProductID:         in.ProductID,
		Type:              adjType,
		Quantity:          in.Quantity,
		Reason:            reason,
		ReasonDescription: invdomain.NormalizeDescription(in.ReasonDescription),
		ActorUserID:       actorUserID,
	}
	audit := stock.Audit{Source: entity.MovementSourceAdjustment, ReferenceID: adj.ID, ActorUserID: actorUserID}
	_, err = uc.ledger.Apply(ctx, []stock.Delta{{ProductID: in.ProductID, Quantity: adjType.SignedDelta(in.Quantity)}}, audit,
		func(ctx context.Context, r repository.Repositories, changes []entity.StockChange) error {
			adj.PreviousStock = changes[0].PreviousStock
			adj.NewStock = changes[0].NewStock
			adj.AdjustmentDate = time.Now().UTC()
			return r.Adjustments.Create(ctx, adj)
		})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("adjustment_id", adj.ID).
		Str("product_id", adj.ProductID).
		Str("reason", string(adj.Reason)).
		Int("previous_stock", adj.PreviousStock).
		Int("new_stock", adj.NewStock).
		Msg("ajuste de inventario registrado")
	return toAdjustmentResponse(adj), nil
}

// History ajustes de un producto, más recientes primero. Sin ajustes devuelve lista vacía.
func (uc *AdjustmentUseCase) History(ctx context.Context, productID string, page dto.PageRequest) ([]dto.AdjustmentResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.list(ctx, repository.AdjustmentFilter{ProductID: productID, Limit: page.Limit, Offset: page.Offset})
}

// ListAll todos los ajustes, más recientes primero.
func (uc *AdjustmentUseCase) ListAll(ctx context.Context, page dto.PageRequest) ([]dto.AdjustmentResponse, error) {
	return uc.list(ctx, repository.AdjustmentFilter{Limit: page.Limit, Offset: page.Offset})
}

// GetByID obtiene un ajuste.
func (uc *AdjustmentUseCase) GetByID(ctx context.Context, id string) (*dto.AdjustmentResponse, error) {
	adj, err := uc.adjustments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	return toAdjustmentResponse(adj), nil
}

func (uc *AdjustmentUseCase) list(ctx context.Context, f repository.AdjustmentFilter) ([]dto.AdjustmentResponse, error) {
	list, err := uc.adjustments.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAdjustmentResponse(a))
	}
	return out, nil
}

func toAdjustmentResponse(a *entity.InventoryAdjustment) *dto.AdjustmentResponse {
	return &dto.AdjustmentResponse{
		ID:                a.ID,
		ProductID:         a.ProductID,
		AdjustmentType:    string(a.Type),
		Quantity:          a.Quantity,
		Reason:            string(a.Reason),
		ReasonDescription: a.ReasonDescription,
		PreviousStock:     a.PreviousStock,
		NewStock:          a.NewStock,
		AdjustmentDate:    a.AdjustmentDate,
		ActorUserID:       a.ActorUserID,
	}
}
