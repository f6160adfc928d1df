package cash_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/cash"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/stock"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
)

const operator = "00000000-0000-0000-0000-000000000003"

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

type fixture struct {
	sessions *cash.SessionUseCase
	sales    *cash.SaleUseCase
	ledger   *stock.Ledger
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	store.SeedProduct(entity.Product{ID: "p1", Name: "Gaseosa 500ml", StockQuantity: 20, Price: decimal.NewFromInt(3)})
	store.SeedProduct(entity.Product{ID: "p2", Name: "Galletas", StockQuantity: 2, Price: decimal.NewFromInt(2)})
	repos := store.Repositories()
	ledger := stock.NewLedger(store, repos.Products, repos.Movements, nil, zerolog.Nop())
	return fixture{
		sessions: cash.NewSessionUseCase(store, repos.CashRegisters, repos.Sales, zerolog.Nop()),
		sales:    cash.NewSaleUseCase(ledger, zerolog.Nop()),
		ledger:   ledger,
	}
}

func sale(productID string, qty int, price string) dto.RecordSaleRequest {
	return dto.RecordSaleRequest{Items: []dto.SaleItemRequest{
		{ProductID: productID, Quantity: qty, UnitPrice: decimal.RequireFromString(price)},
	}}
}

func TestOpenClose_Faltante(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	opened, err := f.sessions.Open(ctx, operator, dto.OpenCashRegisterRequest{InitialAmount: amount("100")})
	require.NoError(t, err)
	assert.Equal(t, "open", opened.Status)

	_, err = f.sales.Record(ctx, operator, sale("p1", 10, "15"))
	require.NoError(t, err)
	_, err = f.sales.Record(ctx, operator, sale("p1", 10, "10"))
	require.NoError(t, err)

	current, err := f.sessions.GetCurrentOpen(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, 2, current.SalesCount)
	assert.True(t, current.TotalSales.Equal(decimal.NewFromInt(250)))

	closed, err := f.sessions.Close(ctx, dto.CloseCashRegisterRequest{CashRegisterID: opened.ID, ActualAmount: amount("345")})
	require.NoError(t, err)
	assert.True(t, closed.Summary.ExpectedAmount.Equal(decimal.NewFromInt(350)))
	assert.True(t, closed.Summary.Difference.Equal(decimal.NewFromInt(-5)))
	assert.Equal(t, "faltante", closed.Summary.Result)
	assert.Equal(t, "closed", closed.CashRegister.Status)
	require.NotNil(t, closed.CashRegister.ClosingDate)

	current, err = f.sessions.GetCurrentOpen(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestOpen_SegundaAperturaFalla(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	first, err := f.sessions.Open(ctx, operator, dto.OpenCashRegisterRequest{InitialAmount: amount("50")})
	require.NoError(t, err)
	_, err = f.sessions.Open(ctx, operator, dto.OpenCashRegisterRequest{InitialAmount: amount("80")})
	require.ErrorIs(t, err, domain.ErrSessionAlreadyOpen)

	current, err := f.sessions.GetCurrentOpen(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, first.ID, current.ID)
	assert.True(t, current.InitialAmount.Equal(decimal.NewFromInt(50)))
}

func TestOpen_ConcurrenteSoloUna(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, rejected := 0, 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.sessions.Open(ctx, operator, dto.OpenCashRegisterRequest{InitialAmount: amount("10")})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrSessionAlreadyOpen) {
				rejected++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
	assert.Equal(t, 9, rejected)
}

func TestOpen_MontoInvalido(t *testing.T) {
	f := setup(t)
	_, err := f.sessions.Open(context.Background(), operator, dto.OpenCashRegisterRequest{InitialAmount: amount("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = f.sessions.Open(context.Background(), operator, dto.OpenCashRegisterRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestClose_Errores(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.sessions.Close(ctx, dto.CloseCashRegisterRequest{CashRegisterID: "no-existe", ActualAmount: amount("0")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	opened, err := f.sessions.Open(ctx, operator, dto.OpenCashRegisterRequest{InitialAmount: amount("100")})
	require.NoError(t, err)

	_, err = f.sessions.Close(ctx, dto.CloseCashRegisterRequest{CashRegisterID: opened.ID, ActualAmount: amount("-3")})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	closed, err := f.sessions.Close(ctx, dto.CloseCashRegisterRequest{CashRegisterID: opened.ID, ActualAmount: amount("100")})
	require.NoError(t, err)
	assert.Equal(t, "cuadrado", closed.Summary.Result)

	_, err = f.sessions.Close(ctx, dto.CloseCashRegisterRequest{CashRegisterID: opened.ID, ActualAmount: amount("100")})
	assert.ErrorIs(t, err, domain.ErrInvalidSessionState)
}

func TestRecord_SinCajaAbierta(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.sales.Record(ctx, operator, sale("p1", 1, "3"))
	require.ErrorIs(t, err, domain.ErrNoOpenSession)

	p, _ := f.ledger.GetStock(ctx, "p1")
	assert.Equal(t, 20, p.StockQuantity, "sin caja no se descuenta stock")
}

func TestRecord_StockInsuficienteTodoONada(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	opened, err := f.sessions.Open(ctx, operator, dto.OpenCashRegisterRequest{InitialAmount: amount("0")})
	require.NoError(t, err)

	_, err = f.sales.Record(ctx, operator, dto.RecordSaleRequest{Items: []dto.SaleItemRequest{
		{ProductID: "p1", Quantity: 5, UnitPrice: decimal.NewFromInt(3)},
		{ProductID: "p2", Quantity: 3, UnitPrice: decimal.NewFromInt(2)},
	}})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	p1, _ := f.ledger.GetStock(ctx, "p1")
	assert.Equal(t, 20, p1.StockQuantity)
	sales, err := f.sessions.Sales(ctx, opened.ID)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestRecord_AgrupaLineasYCalculaTotal(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	_, err := f.sessions.Open(ctx, operator, dto.OpenCashRegisterRequest{InitialAmount: amount("0")})
	require.NoError(t, err)

	got, err := f.sales.Record(ctx, operator, dto.RecordSaleRequest{Items: []dto.SaleItemRequest{
		{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(3)},
		{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(3)},
		{ProductID: "p2", Quantity: 2, UnitPrice: decimal.NewFromInt(2)},
	}})
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 3, got.Items[0].Quantity)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(13)))
	assert.Equal(t, cash.DefaultPaymentMethod, got.PaymentMethod)

	p1, _ := f.ledger.GetStock(ctx, "p1")
	assert.Equal(t, 17, p1.StockQuantity)
}

func TestRecord_Validaciones(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.sales.Record(ctx, operator, dto.RecordSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyLineSet)
	_, err = f.sales.Record(ctx, operator, sale("p1", 0, "1"))
	assert.ErrorIs(t, err, domain.ErrInvalidLineQuantity)
	_, err = f.sales.Record(ctx, operator, sale("p1", 1, "-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidLineQuantity)
}

func TestListYGetByID(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	a, err := f.sessions.Open(ctx, operator, dto.OpenCashRegisterRequest{InitialAmount: amount("10")})
	require.NoError(t, err)
	_, err = f.sessions.Close(ctx, dto.CloseCashRegisterRequest{CashRegisterID: a.ID, ActualAmount: amount("12")})
	require.NoError(t, err)
	b, err := f.sessions.Open(ctx, operator, dto.OpenCashRegisterRequest{InitialAmount: amount("20")})
	require.NoError(t, err)

	list, err := f.sessions.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)

	got, err := f.sessions.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Difference)
	assert.True(t, got.Difference.Equal(decimal.NewFromInt(2)))

	_, err = f.sessions.GetByID(ctx, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
