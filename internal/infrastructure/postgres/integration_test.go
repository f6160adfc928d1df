package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/stock"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-api/pkg/config"
)

// startPostgres levanta un contenedor postgres:16-alpine y aplica las migraciones.
// Solo corre con INTEGRATION=1 y sin -short.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() || os.Getenv("INTEGRATION") == "" {
		t.Skip("integración deshabilitada (INTEGRATION=1 para ejecutar)")
	}

	dpool, err := dockertest.NewPool("")
	require.NoError(t, err, "no se pudo conectar a Docker")
	dpool.MaxWait = 90 * time.Second

	resource, err := dpool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=tienda",
			"POSTGRES_PASSWORD=tienda",
			"POSTGRES_DB=tienda_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "no se pudo iniciar postgres")
	t.Cleanup(func() {
		if err := dpool.Purge(resource); err != nil {
			t.Logf("purge: %v", err)
		}
	})

	cfg := config.DBConfig{
		Host: "localhost", User: "tienda", Password: "tienda", DBName: "tienda_test", SSLMode: "disable",
	}
	fmt.Sscanf(resource.GetPort("5432/tcp"), "%d", &cfg.Port)

	var pool *pgxpool.Pool
	err = dpool.Retry(func() error {
		var err error
		pool, err = postgres.NewPool(context.Background(), cfg)
		return err
	})
	require.NoError(t, err, "postgres no respondió")
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(cfg.ConnectionString(), zerolog.Nop()))
	return pool
}

func seed(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()
	_, err := pool.Exec(ctx, `INSERT INTO providers (id, razon_social, ruc) VALUES ('prov-1', 'Distribuidora Lima SAC', '20123456789')`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `
		INSERT INTO products (id, sku, name, price, stock_quantity, stock_minimum) VALUES
		('p1', 'ARZ-1', 'Arroz', 4.50, 100, 10),
		('p2', 'AZU-1', 'Azúcar', 3.80, 5, 2)`)
	require.NoError(t, err)
}

func TestPostgres_Integration(t *testing.T) {
	pool := startPostgres(t)
	seed(t, pool)
	ctx := context.Background()

	tx := postgres.NewTxRunner(pool)
	repos := postgres.NewRepositories(pool)
	ledger := stock.NewLedger(tx, repos.Products, repos.Movements, nil, zerolog.Nop())
	audit := stock.Audit{Source: entity.MovementSourceAdjustment, ReferenceID: "test", ActorUserID: "u1"}

	t.Run("deltas concurrentes no pierden actualizaciones", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := ledger.Apply(ctx, []stock.Delta{{ProductID: "p1", Quantity: -1}, {ProductID: "p2", Quantity: 1}}, audit, nil)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		p1, err := repos.Products.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, 80, p1.StockQuantity)
		moves, err := repos.Movements.List(ctx, repository.MovementFilter{ProductID: "p1"})
		require.NoError(t, err)
		assert.Len(t, moves, 20)
	})

	t.Run("stock insuficiente revierte todo", func(t *testing.T) {
		_, err := ledger.Apply(ctx, []stock.Delta{{ProductID: "p1", Quantity: -1}, {ProductID: "p2", Quantity: -1000}}, audit, nil)
		require.ErrorIs(t, err, domain.ErrInsufficientStock)
		p1, _ := repos.Products.GetByID(ctx, "p1")
		assert.Equal(t, 80, p1.StockQuantity)
	})

	t.Run("una sola caja abierta", func(t *testing.T) {
		open := func() error {
			return repos.CashRegisters.Create(ctx, &entity.CashRegister{
				ID: newID(), OpeningDate: time.Now().UTC(), InitialAmount: decimal.NewFromInt(100),
				Status: entity.CashRegisterOpen, OperatorUserID: "u1",
			})
		}
		require.NoError(t, open())
		assert.ErrorIs(t, open(), domain.ErrSessionAlreadyOpen)

		s, err := repos.CashRegisters.GetOpen(ctx)
		require.NoError(t, err)
		require.NotNil(t, s)

		sale := &entity.Sale{
			ID: newID(), CashRegisterID: s.ID, Total: decimal.RequireFromString("9.00"),
			PaymentMethod: "efectivo", CreatedBy: "u1", SaleDate: time.Now().UTC(),
			Items: []entity.SaleItem{{ID: newID(), ProductID: "p1", Quantity: 2, UnitPrice: decimal.RequireFromString("4.50"), Subtotal: decimal.RequireFromString("9.00")}},
		}
		require.NoError(t, repos.Sales.Create(ctx, sale))
		total, count, err := repos.Sales.SumByCashRegister(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.True(t, total.Equal(decimal.NewFromInt(9)))

		now := time.Now().UTC()
		expected := decimal.NewFromInt(109)
		s.Status, s.ClosingDate, s.ExpectedAmount = entity.CashRegisterClosed, &now, &expected
		require.NoError(t, repos.CashRegisters.Close(ctx, s))
		assert.ErrorIs(t, repos.CashRegisters.Close(ctx, s), domain.ErrInvalidSessionState)
	})

	t.Run("ajustes con la misma fecha salen del último al primero", func(t *testing.T) {
		at := time.Now().UTC().Truncate(time.Microsecond)
		var ids []string
		for i := 0; i < 5; i++ {
			adj := &entity.InventoryAdjustment{
				ID: newID(), ProductID: "p2", Type: entity.AdjustmentIncrease, Quantity: 1,
				Reason: entity.ReasonCount, PreviousStock: i, NewStock: i + 1, AdjustmentDate: at, ActorUserID: "u1",
			}
			require.NoError(t, repos.Adjustments.Create(ctx, adj))
			ids = append(ids, adj.ID)
		}
		list, err := repos.Adjustments.List(ctx, repository.AdjustmentFilter{ProductID: "p2"})
		require.NoError(t, err)
		require.Len(t, list, 5)
		for i, a := range list {
			assert.Equal(t, ids[len(ids)-1-i], a.ID)
		}
	})

	t.Run("transición condicional de orden", func(t *testing.T) {
		order := &entity.OrderBuy{
			ID: newID(), ProviderID: "prov-1", OrderDate: time.Now().UTC(), Status: entity.OrderStatusPending,
			IGVPercent: decimal.NewFromInt(18), Subtotal: decimal.NewFromInt(10), IGV: decimal.RequireFromString("1.8"),
			Total: decimal.RequireFromString("11.8"), CreatedBy: "u1",
			Lines: []entity.OrderBuyLine{{ID: newID(), LineNo: 1, ProductID: "p1", Quantity: 5, UnitPrice: decimal.NewFromInt(2), Subtotal: decimal.NewFromInt(10)}},
		}
		require.NoError(t, tx.Run(ctx, func(r repository.Repositories) error { return r.Orders.Create(ctx, order) }))

		at := entity.OrderTransition{At: time.Now().UTC()}
		require.NoError(t, repos.Orders.Transition(ctx, order.ID, entity.OrderStatusPending, entity.OrderStatusReceived, at))
		err := repos.Orders.Transition(ctx, order.ID, entity.OrderStatusPending, entity.OrderStatusCancelled, at)
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

		got, err := repos.Orders.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusReceived, got.Status)
		require.Len(t, got.Lines, 1)
		assert.NotNil(t, got.ReceivedAt)

		pending := entity.OrderStatusPending
		list, err := repos.Orders.List(ctx, repository.OrderFilter{Status: &pending})
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
