package inventory

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/stock"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// StockQueryUseCase lecturas de stock: stock actual, movimientos, avisos de stock bajo y proveedores.
type StockQueryUseCase struct {
	ledger    *stock.Ledger
	providers repository.ProviderRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(ledger *stock.Ledger, providers repository.ProviderRepository) *StockQueryUseCase {
	return &StockQueryUseCase{ledger: ledger, providers: providers}
}

// GetStock stock actual del producto.
func (uc *StockQueryUseCase) GetStock(ctx context.Context, productID string) (*dto.StockResponse, error) {
	p, err := uc.ledger.GetStock(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		ProductID:     p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		StockQuantity: p.StockQuantity,
		StockMinimum:  p.StockMinimum,
		LowStock:      p.IsLowStock(),
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

// Movements libro de movimientos del producto, más recientes primero.
func (uc *StockQueryUseCase) Movements(ctx context.Context, productID string, q dto.MovementQuery) ([]dto.StockMovementResponse, error) {
	list, err := uc.ledger.Movements(ctx, repository.MovementFilter{
		ProductID: productID, From: q.From, To: q.To, Limit: q.Limit, Offset: q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMovementResponse{
			ID:            m.ID,
			ProductID:     m.ProductID,
			Source:        string(m.Source),
			ReferenceID:   m.ReferenceID,
			Quantity:      m.Quantity,
			PreviousStock: m.PreviousStock,
			NewStock:      m.NewStock,
			ActorUserID:   m.ActorUserID,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out, nil
}

// LowStock avisos activos de stock bajo.
func (uc *StockQueryUseCase) LowStock(ctx context.Context) ([]entity.LowStockAlert, error) {
	return uc.ledger.LowStock(ctx)
}

// Providers lista de proveedores para armar órdenes de compra.
func (uc *StockQueryUseCase) Providers(ctx context.Context) ([]dto.ProviderResponse, error) {
	list, err := uc.providers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProviderResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ProviderResponse{
			ID:           p.ID,
			BusinessName: p.BusinessName,
			TaxID:        p.TaxID,
			Phone:        p.Phone,
			Email:        p.Email,
			Address:      p.Address,
		})
	}
	return out, nil
}
