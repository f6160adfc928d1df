package inventory_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/application/stock"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
)

const actor = "00000000-0000-0000-0000-000000000001"

func setup(t *testing.T) (*inventory.AdjustmentUseCase, *inventory.StockQueryUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SeedProduct(entity.Product{ID: "p1", SKU: "SKU-1", Name: "Arroz 1kg", StockQuantity: 50, StockMinimum: 5})
	repos := store.Repositories()
	ledger := stock.NewLedger(store, repos.Products, repos.Movements, nil, zerolog.Nop())
	return inventory.NewAdjustmentUseCase(ledger, repos.Adjustments, zerolog.Nop()),
		inventory.NewStockQueryUseCase(ledger, repos.Providers),
		store
}

func strPtr(s string) *string { return &s }

func TestAdjust_IncrementoYDecremento(t *testing.T) {
	ctx := context.Background()
	uc, q, _ := setup(t)

	inc, err := uc.Adjust(ctx, actor, dto.AdjustInventoryRequest{
		ProductID: "p1", AdjustmentType: "increase", Quantity: 10, Reason: "conteo",
	})
	require.NoError(t, err)
	assert.Equal(t, 50, inc.PreviousStock)
	assert.Equal(t, 60, inc.NewStock)
	assert.Equal(t, actor, inc.ActorUserID)

	dec, err := uc.Adjust(ctx, actor, dto.AdjustInventoryRequest{
		ProductID: "p1", AdjustmentType: "decrease", Quantity: 7, Reason: "merma",
		ReasonDescription: strPtr("  bolsas rotas "),
	})
	require.NoError(t, err)
	assert.Equal(t, 60, dec.PreviousStock)
	assert.Equal(t, 53, dec.NewStock)
	require.NotNil(t, dec.ReasonDescription)
	assert.Equal(t, "bolsas rotas", *dec.ReasonDescription)

	st, err := q.GetStock(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 53, st.StockQuantity)

	history, err := uc.History(ctx, "p1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, dec.ID, history[0].ID, "más reciente primero")
	assert.Equal(t, inc.ID, history[1].ID)

	movs, err := q.Movements(ctx, "p1", dto.MovementQuery{})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, dec.ID, movs[0].ReferenceID)
	assert.Equal(t, string(entity.MovementSourceAdjustment), movs[0].Source)
}

func TestAdjust_StockInsuficienteNoRegistra(t *testing.T) {
	ctx := context.Background()
	uc, q, _ := setup(t)

	_, err := uc.Adjust(ctx, actor, dto.AdjustInventoryRequest{
		ProductID: "p1", AdjustmentType: "decrease", Quantity: 51, Reason: "daño",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	st, _ := q.GetStock(ctx, "p1")
	assert.Equal(t, 50, st.StockQuantity)
	history, err := uc.History(ctx, "p1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAdjust_Validaciones(t *testing.T) {
	ctx := context.Background()
	uc, _, store := setup(t)

	tests := []struct {
		name string
		in   dto.AdjustInventoryRequest
		want error
	}{
		{"cantidad cero", dto.AdjustInventoryRequest{ProductID: "p1", AdjustmentType: "increase", Quantity: 0, Reason: "otro"}, domain.ErrInvalidQuantity},
		{"cantidad negativa", dto.AdjustInventoryRequest{ProductID: "p1", AdjustmentType: "decrease", Quantity: -3, Reason: "otro"}, domain.ErrInvalidQuantity},
		{"motivo desconocido", dto.AdjustInventoryRequest{ProductID: "p1", AdjustmentType: "increase", Quantity: 1, Reason: "robo"}, domain.ErrInvalidReason},
		{"tipo desconocido", dto.AdjustInventoryRequest{ProductID: "p1", AdjustmentType: "set", Quantity: 1, Reason: "otro"}, domain.ErrInvalidInput},
		{"producto inexistente", dto.AdjustInventoryRequest{ProductID: "zz", AdjustmentType: "increase", Quantity: 1, Reason: "otro"}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Adjust(ctx, actor, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	all, err := store.Repositories().Adjustments.List(ctx, repository.AdjustmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHistory_SinAjustesEsListaVacia(t *testing.T) {
	uc, _, _ := setup(t)
	list, err := uc.History(context.Background(), "p1", dto.PageRequest{})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := setup(t)
	created, err := uc.Adjust(ctx, actor, dto.AdjustInventoryRequest{ProductID: "p1", AdjustmentType: "increase", Quantity: 1, Reason: "devolucion"})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = uc.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
