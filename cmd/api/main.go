package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/cash"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/application/purchasing"
	"github.com/jhoicas/tienda-api/internal/application/stock"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/cache"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
	"github.com/jhoicas/tienda-api/pkg/telemetry"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("version", version).
		Msg("iniciando aplicación")

	ctx := context.Background()
	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry, version)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar OpenTelemetry")
	}

	txRunner, repos, closeStore := openStore(ctx, cfg, log)
	defer closeStore()

	var notifier ports.LowStockNotifier = ports.NoopLowStockNotifier{}
	if cfg.Redis.Enabled() {
		ttl := time.Duration(cfg.Redis.LowStockTTLMinutes) * time.Minute
		redisNotifier := cache.NewLowStockNotifier(cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB), ttl)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redisNotifier.Ping(pingCtx); err != nil {
			// Redis es opcional; el aviso se reintenta en cada cambio de stock.
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no disponible, alertas de stock bajo sin publicar")
		}
		cancel()
		defer redisNotifier.Close()
		notifier = redisNotifier
	}

	ledger := stock.NewLedger(txRunner, repos.Products, repos.Movements, notifier, log.Component("stock"))
	deps := httpRouter.RouterDeps{
		Adjustments: inventory.NewAdjustmentUseCase(ledger, repos.Adjustments, log.Component("inventory")),
		StockQuery:  inventory.NewStockQueryUseCase(ledger, repos.Providers),
		OrderBuys: purchasing.NewOrderBuyUseCase(
			txRunner, ledger, repos.Orders, repos.Providers, repos.Products, log.Component("purchasing"),
		),
		Sessions:  cash.NewSessionUseCase(txRunner, repos.CashRegisters, repos.Sales, log.Component("cash")),
		Sales:     cash.NewSaleUseCase(ledger, log.Component("cash")),
		JWTSecret: cfg.JWT.Secret,
	}
	if deps.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET vacío: ningún token será aceptado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.AccessLog(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Tienda API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de OpenTelemetry")
	}

	log.Info().Msg("aplicación detenida")
}

// openStore devuelve el TxRunner y los repositorios según STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (ports.TxRunner, repository.Repositories, func()) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		store := memory.NewStore()
		seedDemo(store)
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return store, store.Repositories(), func() {}
	}

	if cfg.Store.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	return postgres.NewTxRunner(pool), postgres.NewRepositories(pool), pool.Close
}

// seedDemo catálogo mínimo para probar la API sin base de datos.
func seedDemo(store *memory.Store) {
	store.SeedProvider(entity.Provider{
		ID: "prov-1", BusinessName: "Distribuidora Lima SAC", TaxID: "20123456789",
		Phone: "014567890", Email: "ventas@distlima.pe", Address: "Av. Argentina 1450, Lima",
	})
	store.SeedProvider(entity.Provider{ID: "prov-2", BusinessName: "Lácteos del Sur EIRL", TaxID: "20456789123"})

	now := time.Now().UTC()
	for _, p := range []entity.Product{
		{ID: "p-gaseosa", SKU: "GAS-500", Name: "Gaseosa 500ml", Price: decimal.RequireFromString("3.00"), StockQuantity: 48, StockMinimum: 12},
		{ID: "p-arroz", SKU: "ARR-1K", Name: "Arroz extra 1kg", Price: decimal.RequireFromString("4.50"), StockQuantity: 30, StockMinimum: 10},
		{ID: "p-leche", SKU: "LEC-400", Name: "Leche evaporada 400g", Price: decimal.RequireFromString("3.80"), StockQuantity: 6, StockMinimum: 12},
		{ID: "p-pan", SKU: "PAN-UN", Name: "Pan francés", Price: decimal.RequireFromString("0.30"), StockQuantity: 0, StockMinimum: 50},
	} {
		p.UpdatedAt = now
		store.SeedProduct(p)
	}
}
